package handler

import (
	"net/http"

	"lakehouse-scheduler/internal/logger"
	"lakehouse-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

// actor rebuilds the caller identity placed in the context by the JWT
// middleware.
func actor(c *gin.Context) service.Actor {
	return service.Actor{ID: uint(c.GetInt("user_id")), Role: c.GetString("user_role")}
}

var kindStatus = map[service.Kind]int{
	service.KindValidation:     http.StatusBadRequest,
	service.KindConflict:       http.StatusConflict,
	service.KindNotFound:       http.StatusNotFound,
	service.KindAuthorization:  http.StatusForbidden,
	service.KindInvalidState:   http.StatusConflict,
	service.KindPartialFailure: http.StatusBadGateway,
}

// writeError maps the service error taxonomy onto HTTP statuses. Untyped
// errors stay opaque 500s.
func writeError(c *gin.Context, err error) {
	kind := service.KindOf(err)
	status, ok := kindStatus[kind]
	if !ok {
		logger.Error("request.failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	body := gin.H{"error": err.Error(), "kind": string(kind)}
	c.JSON(status, body)
}
