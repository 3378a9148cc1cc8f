package domain

import "time"

type BookingType string

const (
	BookingTypeFlight BookingType = "flight"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// FlightDetails is the flight variant of a booking's details. Other booking
// types (hotel, car) would carry their own variant keyed by Booking.Type.
type FlightDetails struct {
	FlightNumber    string     `json:"flightNumber"`
	Origin          Airport    `json:"origin"`
	Destination     Airport    `json:"destination"`
	Departure       FlightTime `json:"departure"`
	Arrival         FlightTime `json:"arrival"`
	DurationMinutes int        `json:"durationMinutes"`
	Stops           int        `json:"stops"`
	Aircraft        string     `json:"aircraft"`
	Passengers      int        `json:"passengers"`
	CabinClass      CabinClass `json:"cabinClass"`
	PassengerName   string     `json:"passengerName,omitempty"`
}

// Booking is the system of record for anything issued by the workflow.
// Confirmation and ticket numbers are assigned at creation and never reused.
type Booking struct {
	ID                 string         `json:"id"`
	Type               BookingType    `json:"type"`
	Provider           string         `json:"provider"`
	Price              float64        `json:"price"`
	ConfirmationNumber string         `json:"confirmationNumber"`
	TicketNumber       string         `json:"ticketNumber"`
	Flight             *FlightDetails `json:"flight,omitempty"`
	PaymentStatus      PaymentStatus  `json:"paymentStatus"`
	PaymentID          string         `json:"paymentId,omitempty"`
	TicketGenerated    bool           `json:"ticketGenerated"`
	Status             BookingStatus  `json:"status"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

// ETicket is the travel document derived from a confirmed booking. It is
// recomputed on every request: identity fields are stable, GeneratedAt is not.
type ETicket struct {
	TicketNumber       string    `json:"ticketNumber"`
	BookingID          string    `json:"bookingId"`
	ConfirmationNumber string    `json:"confirmationNumber"`
	PassengerName      string    `json:"passengerName"`
	QRCode             string    `json:"qrCode"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// PaymentDetails is what the user submits on the payment step.
type PaymentDetails struct {
	CardNumber     string `json:"cardNumber"`
	CardholderName string `json:"cardholderName"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
}
