package handler

import (
	"net/http"

	"lakehouse-scheduler/internal/logger"
	"lakehouse-scheduler/internal/middleware"
	"lakehouse-scheduler/internal/model"
	"lakehouse-scheduler/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.AuthService
	coord  *service.Coordinator
	secret []byte
}

func NewAuthHandler(auth *service.AuthService, coord *service.Coordinator, secret []byte) *AuthHandler {
	return &AuthHandler{auth: auth, coord: coord, secret: secret}
}

// POST /api/auth/signin
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.NewToken(h.secret, u.ID, u.Username, u.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token issue failed"})
		return
	}

	logger.Info("login.ok", "uid", u.ID, "username", u.Username)
	c.JSON(http.StatusOK, model.LoginResponse{Token: token, User: userInfo(u)})
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	u, err := h.coord.Signup(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	logger.Info("signup.ok", "uid", u.ID, "username", u.Username)
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully", "user": userInfo(u)})
}

func userInfo(u *model.User) model.UserInfo {
	return model.UserInfo{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
