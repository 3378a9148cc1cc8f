package api

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tripforge/flightbooking/internal/domain"
	"github.com/tripforge/flightbooking/internal/workflow"
)

var errSessionNotFound = errors.New("workflow session not found")

// WorkflowHandler exposes per-session booking workflows. Each session owns
// one workflow instance; the registry is the only shared state.
type WorkflowHandler struct {
	searcher workflow.FlightSearcher
	booker   workflow.FlightBooker

	mu       sync.RWMutex
	sessions map[string]*workflow.Workflow
}

func NewWorkflowHandler(searcher workflow.FlightSearcher, booker workflow.FlightBooker) *WorkflowHandler {
	return &WorkflowHandler{
		searcher: searcher,
		booker:   booker,
		sessions: make(map[string]*workflow.Workflow),
	}
}

func (h *WorkflowHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:id", h.snapshot)
	router.POST("/:id/search", h.search)
	router.POST("/:id/filter", h.setFilter)
	router.POST("/:id/sort", h.setSort)
	router.POST("/:id/select", h.selectFlight)
	router.POST("/:id/payment", h.submitPayment)
	router.POST("/:id/back", h.back)
	router.DELETE("/:id", h.cancel)
}

func (h *WorkflowHandler) create(c *gin.Context) {
	id := uuid.NewString()

	h.mu.Lock()
	h.sessions[id] = workflow.New(h.searcher, h.booker)
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"sessionId": id})
}

func (h *WorkflowHandler) lookup(c *gin.Context) (*workflow.Workflow, bool) {
	h.mu.RLock()
	wf, ok := h.sessions[c.Param("id")]
	h.mu.RUnlock()
	if !ok {
		writeError(c, errSessionNotFound)
		return nil, false
	}
	return wf, true
}

func (h *WorkflowHandler) snapshot(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *WorkflowHandler) search(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}

	var criteria domain.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := wf.Search(c.Request.Context(), criteria); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *WorkflowHandler) setFilter(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}

	var filter domain.RefinementFilter
	if err := c.ShouldBindJSON(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := wf.SetFilter(filter); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *WorkflowHandler) setSort(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		SortBy domain.SortKey `json:"sortBy"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := wf.SetSort(req.SortBy); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *WorkflowHandler) selectFlight(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}

	var req struct {
		OfferID string `json:"offerId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := wf.SelectFlight(req.OfferID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

func (h *WorkflowHandler) submitPayment(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}

	var details domain.PaymentDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := wf.SubmitPayment(c.Request.Context(), details)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *WorkflowHandler) back(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := wf.Back(); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, wf.Snapshot())
}

// cancel discards the session and its workflow state. Bookings already in
// the store are untouched.
func (h *WorkflowHandler) cancel(c *gin.Context) {
	wf, ok := h.lookup(c)
	if !ok {
		return
	}
	wf.Cancel()

	h.mu.Lock()
	delete(h.sessions, c.Param("id"))
	h.mu.Unlock()

	c.Status(http.StatusNoContent)
}
