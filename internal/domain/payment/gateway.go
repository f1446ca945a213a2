package payment

import "context"

// ChargeRequest carries what a gateway needs to attempt a charge.
type ChargeRequest struct {
	OrderID  string
	Amount   float64
	Currency string
	Token    string
}

// ChargeResult reports the gateway outcome. TransactionID is set only on
// success; Message is always human readable.
type ChargeResult struct {
	Success       bool
	TransactionID string
	Message       string
}

// Gateway is an external payment-processing capability. A returned error
// means the attempt itself could not complete; a declined charge comes back
// as Success=false with a nil error.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}
