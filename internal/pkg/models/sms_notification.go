package models

// SmsNotificationRequest is the payload handed to the notification topic for
// borrower-facing decision and payment messages.
type SmsNotificationRequest struct {
	Mobile     string            `json:"mobile"`
	Event      string            `json:"event"`
	Parameters map[string]string `json:"parameters,omitempty"`
}
