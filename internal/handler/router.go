package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"lakehouse-scheduler/internal/middleware"
	"lakehouse-scheduler/internal/service"
)

// NewRouter assembles the full HTTP surface. Everything except signin and
// signup sits behind the JWT middleware.
func NewRouter(auth *service.AuthService, coord *service.Coordinator, secret []byte) *gin.Engine {
	authH := NewAuthHandler(auth, coord, secret)
	userH := NewUserHandler(coord)
	resH := NewReservationHandler(coord)
	dutyH := NewDutyHandler(coord)
	docH := NewDocumentHandler(coord)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/api/auth/signin", authH.Login)
	r.POST("/api/auth/signup", authH.Signup)

	api := r.Group("/api", middleware.JWTAuth(secret))

	api.GET("/reservations", resH.List)
	api.GET("/reservations/my", resH.My)
	api.POST("/reservations", resH.Create)
	api.DELETE("/reservations/:id", resH.Delete)

	api.GET("/duties", dutyH.List)
	api.POST("/duties", dutyH.Create)
	api.PUT("/duties/:id", dutyH.Update)
	api.POST("/duties/:id/assign", dutyH.Assign)
	api.GET("/duties/assignments", dutyH.Assignments)
	api.GET("/duties/assignments/my", dutyH.MyAssignments)
	api.PUT("/duties/assignments/:id/status", dutyH.Transition)

	api.GET("/users", userH.List)
	api.GET("/users/:id", userH.Get)
	api.GET("/users/by-role/:role", userH.ByRole)
	api.POST("/users", userH.Create)
	api.PUT("/users/:id", userH.Update)
	api.DELETE("/users/:id", userH.Delete)
	api.PUT("/users/:id/role", userH.ChangeRole)

	api.POST("/documents/upload", docH.Upload)
	api.GET("/documents", docH.List)
	api.GET("/documents/my", docH.My)
	api.GET("/documents/search", docH.Search)
	api.GET("/documents/:id", docH.Get)
	api.GET("/documents/:id/download", docH.Download)
	api.DELETE("/documents/:id", docH.Delete)

	return r
}
