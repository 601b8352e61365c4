package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// PartialEnvelope carries a usable payload alongside the warning explaining
// which secondary read failed.
type PartialEnvelope struct {
	Data    any      `json:"data"`
	Warning APIError `json:"warning"`
}
