package types

// ErrorEnvelope is the wire shape for every failed request. Error carries
// the human-readable message; Code the stable machine classification.
type ErrorEnvelope struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}
