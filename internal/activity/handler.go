package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/api"
)

type Handler struct {
	log *Log
}

func NewHandler(log *Log) *Handler {
	return &Handler{log: log}
}

// @Summary      Recent activity
// @Description  Staff-only: latest domain events, newest first.
// @Tags         admin,activity
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum entries returned" default(50)
// @Success      200 {array} activity.Entry
// @Failure      400 {object} api.ErrorResponse
// @Router       /admin/activity [get]
func (h *Handler) Recent(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	c.JSON(http.StatusOK, h.log.Recent(limit))
}
