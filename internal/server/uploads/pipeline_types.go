package uploads

// Artifact is one uploaded file within a single request: the original file
// name plus the ephemeral local temp file holding its bytes. The pipeline
// owns the temp file for the duration of the request and removes it on every
// exit path.
type Artifact struct {
	Name        string
	Path        string
	Size        int64
	ContentType string
}

// Outcome is the per-artifact result of one upload attempt.
type Outcome struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
	Name    string `json:"name"`
	Error   string `json:"error,omitempty"`
}

// BatchResult aggregates the outcomes of one batch. Successful+Failed always
// equals Total.
type BatchResult struct {
	Total      int       `json:"total"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Files      []Outcome `json:"files"`
}

// URLs returns the public URLs of the successful uploads, in input order.
func (r *BatchResult) URLs() []string {
	urls := make([]string, 0, r.Successful)
	for _, f := range r.Files {
		if f.Success {
			urls = append(urls, f.URL)
		}
	}
	return urls
}
