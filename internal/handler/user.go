package handler

import (
	"net/http"
	"strconv"

	"lakehouse-scheduler/internal/model"
	"lakehouse-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	coord *service.Coordinator
}

func NewUserHandler(coord *service.Coordinator) *UserHandler {
	return &UserHandler{coord: coord}
}

// GET /api/users
func (h *UserHandler) List(c *gin.Context) {
	out, err := h.coord.Users(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	u, err := h.coord.User(c.Request.Context(), uint(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /api/users/by-role/:role
func (h *UserHandler) ByRole(c *gin.Context) {
	out, err := h.coord.UsersByRole(c.Request.Context(), actor(c), c.Param("role"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/users
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	u, err := h.coord.CreateUser(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	u, err := h.coord.UpdateUser(c.Request.Context(), actor(c), uint(id), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.coord.DeleteUser(c.Request.Context(), actor(c), uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// PUT /api/users/:id/role
//
// An administrator demoting themselves gets a confirmation_required
// response and must repeat the call with confirm=true; the committed
// response carries session_stale so the client refreshes its identity.
func (h *UserHandler) ChangeRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req model.RoleChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if req.Confirm {
		committed, err := h.coord.ConfirmRoleChange(c.Request.Context(), actor(c), uint(id), req.Role)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": committed.User, "session_stale": committed.SessionStale})
		return
	}

	outcome, err := h.coord.RequestRoleChange(c.Request.Context(), actor(c), uint(id), req.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	if outcome.Pending != nil {
		c.JSON(http.StatusOK, gin.H{
			"confirmation_required": true,
			"warning":               outcome.Pending.Warning,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": outcome.Committed.User, "session_stale": outcome.Committed.SessionStale})
}
