package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"staybook/internal/app/commands"
	ReservationApp "staybook/internal/app/handlers/reservation"
	"staybook/internal/app/queries"
)

type ReservationHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createReservationRequest struct {
	ListingID string    `json:"listing_id"`
	GuestID   string    `json:"guest_id"`
	From      time.Time `json:"from"`
	To        time.Time `json:"to"`
}

func (h ReservationHandler) Create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ReservationApp.CreateCommand{
		CommandID:       generateCommandID(),
		ListingID:       req.ListingID,
		GuestID:         req.GuestID,
		From:            req.From,
		To:              req.To,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[ReservationApp.CreateCommand, *ReservationApp.CreateResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ReservationHandler) Confirm(c *gin.Context) {
	cmd := ReservationApp.ConfirmCommand{ReservationID: c.Param("id")}
	if _, err := h.Commands.Dispatch(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ReservationHandler) Cancel(c *gin.Context) {
	cmd := ReservationApp.CancelCommand{ReservationID: c.Param("id")}
	if _, err := h.Commands.Dispatch(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ReservationHandler) Complete(c *gin.Context) {
	cmd := ReservationApp.CompleteCommand{ReservationID: c.Param("id")}
	if _, err := h.Commands.Dispatch(c.Request.Context(), cmd); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h ReservationHandler) Get(c *gin.Context) {
	q := ReservationApp.GetQuery{ReservationID: c.Param("id")}
	view, err := queries.Ask[ReservationApp.GetQuery, *ReservationApp.ReservationView](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h ReservationHandler) List(c *gin.Context) {
	q := ReservationApp.ListQuery{
		GuestID:   c.Query("guest_id"),
		ListingID: c.Query("listing_id"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}
	view, err := queries.Ask[ReservationApp.ListQuery, *ReservationApp.ListView](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func generateCommandID() string {
	return uuid.NewString()
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

var _ ReservationHTTP = ReservationHandler{}
