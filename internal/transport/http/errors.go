package transporthttp

import (
	"errors"

	apporder "github.com/ilmi2809/tubeseai/internal/application/order"
	apppayment "github.com/ilmi2809/tubeseai/internal/application/payment"
	appshipment "github.com/ilmi2809/tubeseai/internal/application/shipment"
	domainorder "github.com/ilmi2809/tubeseai/internal/domain/order"
	domainpayment "github.com/ilmi2809/tubeseai/internal/domain/payment"
	domainshipment "github.com/ilmi2809/tubeseai/internal/domain/shipment"
	"github.com/ilmi2809/tubeseai/internal/infrastructure/rpc"
)

type codedError struct {
	code    string
	message string
}

func (e *codedError) Error() string { return e.message }

func badRequest(message string) error {
	return &codedError{code: rpc.CodeBadRequest, message: message}
}

// errorCode maps a failure to its stable wire code. Anything unrecognized,
// including failures of our own calls to peer services, is INTERNAL.
func errorCode(err error) string {
	var coded *codedError
	if errors.As(err, &coded) {
		return coded.code
	}

	switch {
	case errors.Is(err, domainorder.ErrNotFound),
		errors.Is(err, domainpayment.ErrNotFound),
		errors.Is(err, domainshipment.ErrNotFound),
		errors.Is(err, apporder.ErrUserNotFound),
		errors.Is(err, apporder.ErrProductNotFound),
		errors.Is(err, apppayment.ErrOrderNotFound),
		errors.Is(err, appshipment.ErrOrderNotFound):
		return rpc.CodeNotFound
	case errors.Is(err, apporder.ErrInsufficientStock):
		return rpc.CodeInsufficientStock
	case errors.Is(err, apppayment.ErrUnsupportedMethod),
		errors.Is(err, appshipment.ErrUnsupportedCarrier):
		return rpc.CodeUnsupported
	case errors.Is(err, appshipment.ErrOrderNotShippable),
		errors.Is(err, domainpayment.ErrInvalidTransition):
		return rpc.CodeInvalidState
	case errors.Is(err, domainorder.ErrNoItems),
		errors.Is(err, domainorder.ErrInvalidQuantity),
		errors.Is(err, domainorder.ErrUnknownStatus),
		errors.Is(err, domainpayment.ErrInvalidAmount),
		errors.Is(err, domainshipment.ErrUnknownStatus),
		errors.Is(err, domainshipment.ErrDuplicateTracking):
		return rpc.CodeBadRequest
	}
	return rpc.CodeInternal
}
