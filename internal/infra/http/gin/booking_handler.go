package ginserver

import (
	"net/http"
	"strconv"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bookingapp "stayhub/internal/app/booking"
)

type BookingHandler struct {
	Request    *bookingapp.RequestBookingHandler
	Transition *bookingapp.TransitionHandler
	CancelCmd  *bookingapp.CancelBookingHandler
	GuestList  *bookingapp.ListGuestReservationsHandler
	HostList   *bookingapp.ListHostReservationsHandler
}

type createReservationRequest struct {
	AccommodationID string    `json:"accommodation_id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Guests          int       `json:"guests"`
}

func (h BookingHandler) Create(c *gin.Context) {
	guestID, ok := actorID(c)
	if !ok {
		return
	}
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.RequestBookingCommand{
		CommandID:       generateCommandID(),
		AccommodationID: req.AccommodationID,
		GuestID:         guestID,
		Start:           req.Start,
		End:             req.End,
		Guests:          req.Guests,
	}
	result, err := h.Request.Handle(c.Request.Context(), cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) Confirm(c *gin.Context) {
	hostID, ok := actorID(c)
	if !ok {
		return
	}
	result, err := h.Transition.HandleConfirm(c.Request.Context(), bookingapp.ConfirmReservationCommand{
		ReservationID: c.Param("id"),
		ActorID:       hostID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Complete(c *gin.Context) {
	hostID, ok := actorID(c)
	if !ok {
		return
	}
	result, err := h.Transition.HandleComplete(c.Request.Context(), bookingapp.CompleteReservationCommand{
		ReservationID: c.Param("id"),
		ActorID:       hostID,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type cancelReservationRequest struct {
	Reason string `json:"reason"`
}

func (h BookingHandler) Cancel(c *gin.Context) {
	userID, ok := actorID(c)
	if !ok {
		return
	}
	var req cancelReservationRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	result, err := h.CancelCmd.Handle(c.Request.Context(), bookingapp.CancelReservationCommand{
		ReservationID: c.Param("id"),
		ActorID:       userID,
		Reason:        req.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) ListMine(c *gin.Context) {
	guestID, ok := actorID(c)
	if !ok {
		return
	}
	page, err := h.GuestList.Handle(c.Request.Context(), bookingapp.ListGuestReservationsQuery{
		GuestID: guestID,
		Limit:   queryInt(c, "limit"),
		Offset:  queryInt(c, "offset"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": page.Items, "total": page.Total})
}

func (h BookingHandler) ListForAccommodation(c *gin.Context) {
	hostID, ok := actorID(c)
	if !ok {
		return
	}
	page, err := h.HostList.Handle(c.Request.Context(), bookingapp.ListHostReservationsQuery{
		HostID:          hostID,
		AccommodationID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": page.Items, "total": page.Total})
}

func queryInt(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func generateCommandID() string {
	return uuid.NewString()
}

var _ BookingHTTP = BookingHandler{}
