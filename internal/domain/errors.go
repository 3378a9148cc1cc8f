package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrFlightNotFound  = errors.New("flight not found")
	ErrBookingNotFound = errors.New("booking not found")

	// ErrTicketNotPaid is returned when a ticket is requested for a booking
	// whose payment has not completed.
	ErrTicketNotPaid = errors.New("booking payment is not completed")
)

// ValidationError reports required fields missing from a submission.
// It blocks the workflow transition before any asynchronous work starts.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// PaymentError is a rejected payment submission. Retryable rejections leave
// the workflow in the payment state so the user can try again.
type PaymentError struct {
	Reason    string
	Retryable bool
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("payment rejected: %s", e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPayment reports whether err is a PaymentError.
func IsPayment(err error) bool {
	var pe *PaymentError
	return errors.As(err, &pe)
}
