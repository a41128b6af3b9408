package handler

import (
	"net/http"
	"strconv"

	"lakehouse-scheduler/internal/model"
	"lakehouse-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

type DutyHandler struct {
	coord *service.Coordinator
}

func NewDutyHandler(coord *service.Coordinator) *DutyHandler {
	return &DutyHandler{coord: coord}
}

// GET /api/duties — the assignable pool. ?all=true includes inactive
// duties (admin only).
func (h *DutyHandler) List(c *gin.Context) {
	var (
		out []model.Duty
		err error
	)
	if c.Query("all") == "true" {
		out, err = h.coord.Duties(c.Request.Context(), actor(c))
	} else {
		out, err = h.coord.ActiveDuties(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.Duty{}
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/duties
func (h *DutyHandler) Create(c *gin.Context) {
	var req model.DutyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	duty, err := h.coord.CreateDuty(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, duty)
}

// PUT /api/duties/:id
func (h *DutyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.DutyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	duty, err := h.coord.UpdateDuty(c.Request.Context(), actor(c), uint(id), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, duty)
}

// POST /api/duties/:id/assign
func (h *DutyHandler) Assign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.AssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	assignment, err := h.coord.AssignDuty(c.Request.Context(), actor(c), uint(id), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// GET /api/duties/assignments
func (h *DutyHandler) Assignments(c *gin.Context) {
	out, err := h.coord.Assignments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.DutyAssignment{}
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/duties/assignments/my
func (h *DutyHandler) MyAssignments(c *gin.Context) {
	out, err := h.coord.MyAssignments(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.DutyAssignment{}
	}
	c.JSON(http.StatusOK, out)
}

// PUT /api/duties/assignments/:id/status
func (h *DutyHandler) Transition(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	assignment, err := h.coord.TransitionAssignment(c.Request.Context(), actor(c), uint(id), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}
