package mail

import "context"

// Destination is one recipient of a bulk templated send, together with the
// per-recipient template replacement data.
type Destination struct {
	ToAddress    string
	TemplateData map[string]any
}

// SendResult reports the provider outcome for one destination. Err is empty
// when the message was accepted for delivery.
type SendResult struct {
	ToAddress string
	MessageID string
	Err       string
}

func (r SendResult) Sent() bool {
	return r.Err == ""
}

// Mailer sends one templated message per destination. The returned slice is
// index-aligned with the destinations; a partially failed send is not an
// error, each destination carries its own outcome.
type Mailer interface {
	SendBulkTemplated(ctx context.Context, template string, destinations []Destination) ([]SendResult, error)
}
