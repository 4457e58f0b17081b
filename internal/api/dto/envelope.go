package dto

// Envelope is the common response shape for commands.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}
