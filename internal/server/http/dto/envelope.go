package dto

// Envelope is the common success/failure response shape.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Fail builds a failure envelope.
func Fail(message string) Envelope {
	return Envelope{Success: false, Message: message}
}

// OK builds a success envelope.
func OK(message string) Envelope {
	return Envelope{Success: true, Message: message}
}
