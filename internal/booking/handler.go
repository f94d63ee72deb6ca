package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/api"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/auth"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/class"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// respondLedgerError maps each expected rejection kind to its own 4xx
// status plus a machine-readable code.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, class.ErrClassNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrNotOwner):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Can only manage own bookings"})
	case errors.Is(err, ErrNoSuchOccurrence):
		api.Fail(c, http.StatusBadRequest, api.CodeConfigurationError, err.Error())
	case errors.Is(err, ErrClassUnavailable):
		api.Fail(c, http.StatusForbidden, api.CodeClassUnavailable, err.Error())
	case errors.Is(err, ErrDuplicateBooking):
		api.Fail(c, http.StatusConflict, api.CodeDuplicateBooking, err.Error())
	case errors.Is(err, ErrInvalidState):
		api.Fail(c, http.StatusGone, api.CodeInvalidState, err.Error())
	case errors.Is(err, ErrNotToday):
		api.Fail(c, http.StatusPreconditionFailed, api.CodeNotToday, err.Error())
	case errors.Is(err, ErrCapacityExceeded):
		api.Fail(c, http.StatusUnprocessableEntity, api.CodeCapacityExceeded, err.Error())
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Operation failed"})
	}
}

// @Summary      Enroll in a class occurrence
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body booking.EnrollRequest true "Occurrence date and start time"
// @Success      201 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      422 {object} api.ErrorResponse
// @Router       /classes/{classID}/enroll [post]
func (h *Handler) Enroll(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	b, err := h.service.Enroll(c.Request.Context(), memberID, classID, req)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// @Summary      Cancel a booking
// @Description  Frees the seat immediately; re-enrolling creates a new booking.
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path string true "Booking ID"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      410 {object} api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), memberID, bookingID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      Check a member in to a class
// @Description  Staff-only: marks a confirmed booking attended. Only valid on the occurrence date.
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path string true "Booking ID"
// @Success      200 {object} booking.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      410 {object} api.ErrorResponse
// @Failure      412 {object} api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/attend [post]
func (h *Handler) Attend(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	b, err := h.service.Attend(c.Request.Context(), bookingID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}

// @Summary      List my bookings
// @Tags         bookings
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} booking.Booking
// @Failure      401 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	bookings, err := h.service.GetMemberBookings(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      Occurrence roster
// @Description  Staff-only: bookings for one class occurrence.
// @Tags         admin,bookings
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        date query string true "Occurrence date (YYYY-MM-DD)"
// @Param        start query string true "Start time (HH:MM)"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/classes/{classID}/roster [get]
func (h *Handler) GetRoster(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	date := c.Query("date")
	start := c.Query("start")
	if date == "" || start == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date and start query parameters required"})
		return
	}

	key := OccurrenceKey{ClassID: classID, Date: date, StartTime: start}
	roster, err := h.service.GetRoster(c.Request.Context(), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch roster"})
		return
	}

	c.JSON(http.StatusOK, roster)
}
