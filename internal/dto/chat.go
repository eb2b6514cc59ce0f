package dto

// ChatRequest is the inbound body of POST /chat. Only the message field is
// consumed; emptiness is validated in the service so the caller always gets
// the standard envelope rather than a binding error.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the three-part outbound envelope. Message is always
// present; Data only on success.
type ChatResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
