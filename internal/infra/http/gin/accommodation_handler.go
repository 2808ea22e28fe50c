package ginserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	gin "github.com/gin-gonic/gin"

	accommodationapp "stayhub/internal/app/accommodations"
	metricsapp "stayhub/internal/app/metrics"
)

type AccommodationHandler struct {
	Create       *accommodationapp.CreateAccommodationHandler
	Update       *accommodationapp.UpdateAccommodationHandler
	Delete       *accommodationapp.DeleteAccommodationHandler
	Search       *accommodationapp.SearchAccommodationsHandler
	PricePreview *accommodationapp.PricePreviewHandler
	Metrics      *metricsapp.AccommodationMetricsHandler
}

type accommodationRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Line1            string   `json:"line1"`
	City             string   `json:"city"`
	Country          string   `json:"country"`
	Amenities        []string `json:"amenities"`
	MaxGuests        int      `json:"max_guests"`
	NightlyRateCents int64    `json:"nightly_rate_cents"`
	Currency         string   `json:"currency"`
}

func (h AccommodationHandler) CreateOne(c *gin.Context) {
	hostID, ok := actorID(c)
	if !ok {
		return
	}
	var req accommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Create.Handle(c.Request.Context(), accommodationapp.CreateAccommodationCommand{
		CommandID:        generateCommandID(),
		HostID:           hostID,
		Title:            req.Title,
		Description:      req.Description,
		Line1:            req.Line1,
		City:             req.City,
		Country:          req.Country,
		Amenities:        req.Amenities,
		MaxGuests:        req.MaxGuests,
		NightlyRateCents: req.NightlyRateCents,
		Currency:         req.Currency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h AccommodationHandler) UpdateOne(c *gin.Context) {
	hostID, ok := actorID(c)
	if !ok {
		return
	}
	var req accommodationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Update.Handle(c.Request.Context(), accommodationapp.UpdateAccommodationCommand{
		AccommodationID:  c.Param("id"),
		ActorID:          hostID,
		Title:            req.Title,
		Description:      req.Description,
		Line1:            req.Line1,
		City:             req.City,
		Country:          req.Country,
		Amenities:        req.Amenities,
		MaxGuests:        req.MaxGuests,
		NightlyRateCents: req.NightlyRateCents,
		Currency:         req.Currency,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AccommodationHandler) DeleteOne(c *gin.Context) {
	hostID, ok := actorID(c)
	if !ok {
		return
	}
	result, err := h.Delete.Handle(c.Request.Context(), accommodationapp.DeleteAccommodationCommand{
		AccommodationID: c.Param("id"),
		ActorID:         hostID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AccommodationHandler) Catalog(c *gin.Context) {
	query := accommodationapp.SearchAccommodationsQuery{
		HostID:        c.Query("host_id"),
		City:          c.Query("city"),
		Country:       c.Query("country"),
		CheckIn:       queryDate(c, "check_in"),
		CheckOut:      queryDate(c, "check_out"),
		MinGuests:     queryInt(c, "guests"),
		PriceMinCents: queryInt64(c, "price_min_cents"),
		PriceMaxCents: queryInt64(c, "price_max_cents"),
		Amenities:     queryTokens(c, "amenities"),
		Limit:         queryInt(c, "limit"),
		Offset:        queryInt(c, "offset"),
	}
	result, err := h.Search.Handle(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": result.Items, "total": result.Total})
}

func (h AccommodationHandler) Preview(c *gin.Context) {
	result, err := h.PricePreview.Handle(c.Request.Context(), accommodationapp.PricePreviewQuery{
		AccommodationID: c.Param("id"),
		Start:           queryDate(c, "start"),
		End:             queryDate(c, "end"),
		Guests:          queryInt(c, "guests"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h AccommodationHandler) Stats(c *gin.Context) {
	if _, ok := actorID(c); !ok {
		return
	}
	result, err := h.Metrics.Handle(c.Request.Context(), metricsapp.AccommodationMetricsQuery{
		AccommodationID: c.Param("id"),
		From:            queryDate(c, "from"),
		To:              queryDate(c, "to"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func queryDate(c *gin.Context, key string) time.Time {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return time.Time{}
}

func queryInt64(c *gin.Context, key string) int64 {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func queryTokens(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

var _ AccommodationHTTP = AccommodationHandler{}
