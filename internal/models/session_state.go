package models

// SessionStatus is the visible phase of the generation session.
type SessionStatus string

const (
	StatusIdle    SessionStatus = "idle"
	StatusLoading SessionStatus = "loading"
	StatusError   SessionStatus = "error"
	StatusSuccess SessionStatus = "success"
)

// ErrorKind classifies a failed generation for the UI.
type ErrorKind string

const (
	ErrorKindLocalValidation   ErrorKind = "LocalValidationError"
	ErrorKindMalformedResponse ErrorKind = "MalformedResponse"
	ErrorKindAuthentication    ErrorKind = "AuthenticationError"
	ErrorKindTimeout           ErrorKind = "TimeoutError"
	ErrorKindUnknown           ErrorKind = "UnknownError"
)

// SessionState is the single state cell rendered by the frontend.
// Message and ErrorKind are only set on error, Output only on success.
// Ticket identifies the submission that produced the state.
type SessionState struct {
	Status      SessionStatus     `json:"status"`
	Ticket      uint64            `json:"ticket"`
	Message     string            `json:"message,omitempty"`
	ErrorKind   ErrorKind         `json:"errorKind,omitempty"`
	Output      *GenerationOutput `json:"output,omitempty"`
	KeyRequired bool              `json:"keyRequired"`
}

func Idle() SessionState {
	return SessionState{Status: StatusIdle}
}

func Loading(ticket uint64) SessionState {
	return SessionState{Status: StatusLoading, Ticket: ticket}
}

func Failed(ticket uint64, kind ErrorKind, message string) SessionState {
	return SessionState{Status: StatusError, Ticket: ticket, ErrorKind: kind, Message: message}
}

func Succeeded(ticket uint64, out *GenerationOutput) SessionState {
	return SessionState{Status: StatusSuccess, Ticket: ticket, Output: out}
}
