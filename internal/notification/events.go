// Package notification publishes templated-message requests to the broker.
// Delivery is fire-and-forget: errors are logged and returned, and callers
// are expected to ignore them rather than fail the main request.
package notification

// Message kinds understood by the downstream sender.
const (
	KindContract    = "contract"
	KindVideo       = "video"
	KindPostWedding = "post_wedding"
)

// NotifyEvent asks the sender to deliver the templated message of the given
// kind to the customer behind a booking.
type NotifyEvent struct {
	EventID     string `json:"event_id"`
	Kind        string `json:"kind"`
	BookingID   int64  `json:"booking_id"`
	Customer    string `json:"customer"`
	Phone       string `json:"phone"`
	RequestedAt string `json:"requested_at"`
}
