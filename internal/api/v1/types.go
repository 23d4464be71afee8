package v1

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status   string `json:"status"`
	Upstream string `json:"upstream"` // "configured" or "unconfigured"
	Version  string `json:"version,omitempty"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
