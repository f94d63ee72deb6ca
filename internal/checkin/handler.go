package checkin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/api"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/auth"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/member"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Gym-door check-in
// @Description  Records a visit for the authenticated member.
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Success      201 {object} checkin.CheckIn
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /checkins [post]
func (h *Handler) CheckIn(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	record, err := h.service.CheckIn(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, member.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Member not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record check-in"})
		}
		return
	}

	c.JSON(http.StatusCreated, record)
}

// @Summary      Check out
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Param        checkinID path string true "Check-in ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /checkins/{checkinID}/checkout [post]
func (h *Handler) CheckOut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("checkinID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid check-in ID"})
		return
	}

	if err := h.service.CheckOut(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrCheckInNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Check-in not found or already checked out"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to record check-out"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Checked out"})
}

// @Summary      Attendance dashboard
// @Description  Staff-only: today/this-week visit counts and upcoming birthdays. Cached briefly.
// @Tags         admin,stats
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} checkin.Stats
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary      My visit stats
// @Tags         checkins
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} checkin.MemberStats
// @Failure      401 {object} api.ErrorResponse
// @Router       /me/stats [get]
func (h *Handler) MyStats(c *gin.Context) {
	memberID, ok := auth.GetMemberID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	stats, err := h.service.MemberStats(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
