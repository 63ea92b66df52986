package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/app/commands"
	"staybook/internal/app/dto"
	ListingApp "staybook/internal/app/handlers/listing"
	"staybook/internal/app/queries"
)

type ListingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

func (h ListingHandler) Get(c *gin.Context) {
	q := ListingApp.GetQuery{ListingID: c.Param("id")}
	view, err := queries.Ask[ListingApp.GetQuery, *dto.ListingDTO](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h ListingHandler) List(c *gin.Context) {
	q := ListingApp.ListQuery{
		Capacity:      queryInt(c, "capacity"),
		MinPriceCents: queryInt64(c, "min_price_cents"),
		MaxPriceCents: queryInt64(c, "max_price_cents"),
		Currency:      c.Query("currency"),
		Page:          queryInt(c, "page"),
		Limit:         queryInt(c, "limit"),
	}
	view, err := queries.Ask[ListingApp.ListQuery, *ListingApp.ListView](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h ListingHandler) Availability(c *gin.Context) {
	from, err := parseTimeParam(c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
		return
	}
	to, err := parseTimeParam(c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
		return
	}
	q := ListingApp.AvailabilityQuery{ListingID: c.Param("id"), From: from, To: to}
	view, err := queries.Ask[ListingApp.AvailabilityQuery, *ListingApp.AvailabilityView](c.Request.Context(), h.Queries, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type blockPeriodRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (h ListingHandler) Block(c *gin.Context) {
	var req blockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ListingApp.BlockPeriodCommand{ListingID: c.Param("id"), From: req.From, To: req.To}
	result, err := commands.Dispatch[ListingApp.BlockPeriodCommand, *ListingApp.BlockPeriodResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func parseTimeParam(raw string) (time.Time, error) {
	return time.Parse(time.RFC3339, raw)
}

func queryInt64(c *gin.Context, name string) int64 {
	v, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

var _ ListingHTTP = ListingHandler{}
