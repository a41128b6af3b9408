package handler

import (
	"net/http"
	"strconv"

	"lakehouse-scheduler/internal/model"
	"lakehouse-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	coord *service.Coordinator
}

func NewReservationHandler(coord *service.Coordinator) *ReservationHandler {
	return &ReservationHandler{coord: coord}
}

// GET /api/reservations — current and future bookings, soonest first.
// GET /api/reservations?all=true walks the whole ledger.
func (h *ReservationHandler) List(c *gin.Context) {
	if c.Query("all") == "true" {
		out := []model.Reservation{}
		for r, err := range h.coord.Reservations(c.Request.Context()) {
			if err != nil {
				writeError(c, err)
				return
			}
			out = append(out, r)
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := h.coord.UpcomingReservations(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.Reservation{}
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/reservations/my
func (h *ReservationHandler) My(c *gin.Context) {
	out, err := h.coord.MyReservations(c.Request.Context(), actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if out == nil {
		out = []model.Reservation{}
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	var req model.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	res, err := h.coord.CreateReservation(c.Request.Context(), actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /api/reservations/:id
func (h *ReservationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.coord.DeleteReservation(c.Request.Context(), actor(c), uint(id)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reservation deleted"})
}
