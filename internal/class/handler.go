package class

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/api"
	"github.com/AgilPashayev/Viking-Hammer-Crossfit-app-sub003/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Create a class
// @Description  Staff-only: create a new gym class
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body class.CreateClassRequest true "Class payload"
// @Success      201 {object} class.GymClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	created, err := h.service.CreateClass(ctx, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} class.GymClass
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	ctx := c.Request.Context()
	classes, err := h.service.GetAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      Get a class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Success      200 {object} class.GymClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /classes/{classID} [get]
func (h *Handler) GetClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	found, err := h.service.GetByID(c.Request.Context(), classID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		return
	}

	c.JSON(http.StatusOK, found)
}

// @Summary      Update class status
// @Description  Staff-only: activate/deactivate a class. "full" is advisory.
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body class.UpdateStatusRequest true "New status"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{classID}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.service.SetStatus(c.Request.Context(), classID, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update class"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class updated"})
}

// @Summary      Add a weekly slot to a class
// @Description  Staff-only. Day accepts an index (0=Sunday) or a day name.
// @Tags         admin,classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        classID path int true "Class ID"
// @Param        request body class.CreateSlotRequest true "Slot payload"
// @Success      201 {object} schedule.Slot
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{classID}/slots [post]
func (h *Handler) AddSlot(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("classID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	slot, err := h.service.AddSlot(c.Request.Context(), classID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class not found"})
		case errors.Is(err, schedule.ErrConfiguration):
			api.Fail(c, http.StatusBadRequest, api.CodeConfigurationError, err.Error())
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// @Summary      Upcoming class occurrences
// @Description  One nearest occurrence per active class, soonest first.
// @Tags         schedule
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum occurrences returned" default(20)
// @Success      200 {array} schedule.Occurrence
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedule/upcoming [get]
func (h *Handler) Upcoming(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid limit"})
			return
		}
		limit = n
	}

	occs, err := h.service.Upcoming(c.Request.Context(), limit)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrConfiguration):
			api.Fail(c, http.StatusBadRequest, api.CodeConfigurationError, err.Error())
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to resolve schedule"})
		}
		return
	}

	c.JSON(http.StatusOK, occs)
}
