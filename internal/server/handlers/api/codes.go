package api

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeNotFound       = "E_NOT_FOUND"       // resource not found

	// Auth errors
	CodeAuthRequired           = "E_AUTH_REQUIRED"            // missing or malformed Authorization header
	CodeAuthInvalidCredentials = "E_AUTH_INVALID_CREDENTIALS" // credentials or token invalid, expired, or malformed

	// Catalog errors
	CodeCarNotFound  = "E_CAR_NOT_FOUND"  // the requested car record does not exist
	CodeCarPutFailed = "E_CAR_PUT_FAILED" // a failure while persisting a car record

	// Upload errors
	CodeUploadInvalidFile = "E_UPLOAD_INVALID_FILE" // file failed the image/size validation
	CodeUploadFailed      = "E_UPLOAD_FAILED"       // object store rejected the upload
)
