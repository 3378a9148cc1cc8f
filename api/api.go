package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/workflow"
)

// writeError maps domain and workflow errors onto HTTP statuses so every
// handler reports failures the same way.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrFlightNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, errSessionNotFound):
		status = http.StatusNotFound
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case domain.IsPayment(err):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrTicketNotPaid),
		errors.Is(err, workflow.ErrNoActiveResults),
		errors.Is(err, workflow.ErrNoSelection),
		errors.Is(err, workflow.ErrOfferNotDisplayed),
		errors.Is(err, workflow.ErrAbandoned):
		status = http.StatusConflict
	case errors.Is(err, workflow.ErrPaymentInFlight):
		status = http.StatusTooManyRequests
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
