package entity

const EventTypeOTPVerified = "otp_verified"

// Event is pushed to realtime channels.
type Event struct {
	Type string `json:"type"`
}

func NewOTPVerifiedEvent() Event {
	return Event{Type: EventTypeOTPVerified}
}
