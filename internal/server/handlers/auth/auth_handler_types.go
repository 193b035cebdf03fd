package auth

// LoginRequest carries the credential pair.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginUser is the identity echoed back on a successful login.
type LoginUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
