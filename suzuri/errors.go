package suzuri

import "fmt"

// UpstreamError reports a failed interaction with the SUZURI API: a non-2xx
// response, an unreachable host, or a 2xx response that is logically
// incomplete. Status is zero when no HTTP response was received. Body holds
// the raw upstream response for diagnostics; it never contains the bearer
// credential.
type UpstreamError struct {
	Status  int
	Body    string
	Message string
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("suzuri: %s: status %d: %s", e.Message, e.Status, e.Body)
	case e.Message != "":
		return fmt.Sprintf("suzuri: %s", e.Message)
	default:
		return fmt.Sprintf("suzuri: unexpected status %d: %s", e.Status, e.Body)
	}
}
