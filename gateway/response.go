package gateway

// errorResponse is the envelope every failed request renders. Details carries
// the underlying failure message on 500 responses; validation failures put
// their message straight into Error.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
