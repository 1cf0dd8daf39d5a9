package stripe

import "encoding/json"

// LineItem describes one priced entry of a checkout session.
type LineItem struct {
	Name        string
	Description string
	// UnitAmount is in the currency's smallest unit (cents).
	UnitAmount int64
	Currency   string
	Quantity   int64
}

// CreateSessionRequest carries the parameters for a new checkout session.
type CreateSessionRequest struct {
	Mode       string
	SuccessURL string
	CancelURL  string
	LineItems  []LineItem
	Metadata   map[string]string
	// ClientReferenceID ties the session back to our own records.
	ClientReferenceID string
}

// CheckoutSession mirrors the fields of the provider's session object we
// consume.
type CheckoutSession struct {
	ID                string            `json:"id"`
	URL               string            `json:"url"`
	Status            string            `json:"status"`         // open, complete, expired
	PaymentStatus     string            `json:"payment_status"` // paid, unpaid, no_payment_required
	AmountTotal       int64             `json:"amount_total"`
	Currency          string            `json:"currency"`
	ClientReferenceID string            `json:"client_reference_id"`
	Metadata          map[string]string `json:"metadata"`
}

// Event is a webhook notification.
type Event struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Created int64     `json:"created"`
	Data    EventData `json:"data"`
}

// EventData wraps the object an event describes.
type EventData struct {
	Object json.RawMessage `json:"object"`
}

// apiError mirrors the provider's error envelope.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
