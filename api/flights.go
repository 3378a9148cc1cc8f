package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

// searchRequest is a one-shot search: criteria plus optional refinement and
// sort, applied in that order.
type searchRequest struct {
	Origin        string                   `json:"origin"`
	Destination   string                   `json:"destination"`
	DepartureDate string                   `json:"departureDate"`
	Passengers    int                      `json:"passengers"`
	CabinClass    domain.CabinClass        `json:"cabinClass"`
	Filters       *domain.RefinementFilter `json:"filters,omitempty"`
	SortBy        domain.SortKey           `json:"sortBy,omitempty"`
}

type searchResponse struct {
	Total   int                  `json:"total"`
	Flights []domain.FlightOffer `json:"flights"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id", h.get)
	router.POST("/search", h.search)
}

func (h *FlightHandler) list(c *gin.Context) {
	offers, err := h.service.Search(c.Request.Context(), domain.SearchCriteria{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, searchResponse{Total: len(offers), Flights: offers})
}

func (h *FlightHandler) get(c *gin.Context) {
	offer, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, offer)
}

func (h *FlightHandler) search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.service.Search(c.Request.Context(), domain.SearchCriteria{
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureDate: req.DepartureDate,
		Passengers:    req.Passengers,
		CabinClass:    req.CabinClass,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Filters != nil {
		results = flights.Refine(results, *req.Filters)
	}
	if req.SortBy != "" {
		results = flights.Sort(results, req.SortBy)
	}

	c.JSON(http.StatusOK, searchResponse{Total: len(results), Flights: results})
}

type ReferenceHandler struct {
	service flights.FlightUseCase
}

func NewReferenceHandler(service flights.FlightUseCase) *ReferenceHandler {
	return &ReferenceHandler{service: service}
}

func (h *ReferenceHandler) Register(router *gin.RouterGroup) {
	router.GET("/airports", h.airports)
	router.GET("/airlines", h.airlines)
}

func (h *ReferenceHandler) airports(c *gin.Context) {
	airports, err := h.service.Airports(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airports)
}

func (h *ReferenceHandler) airlines(c *gin.Context) {
	airlines, err := h.service.Airlines(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, airlines)
}
