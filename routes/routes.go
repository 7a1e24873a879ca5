package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"frontdesk-backend/controllers"
	"frontdesk-backend/middleware"
	"frontdesk-backend/models"
	"frontdesk-backend/services"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	rc *controllers.RoomController,
	gc *controllers.GuestController,
	ac *controllers.AuthController,
	auth *services.AuthService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protect := middleware.Protect(auth)
	admin := middleware.RequireAdmin()

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/login", ac.Login)
			authRoutes.POST("/logout", protect, ac.Logout)
			authRoutes.GET("/me", protect, ac.Me)
		}

		rooms := api.Group("/rooms", protect)
		{
			rooms.GET("", rc.GetRooms)
			rooms.POST("", admin, rc.CreateRoom)
			rooms.GET("/:id", rc.GetRoom)
			rooms.PUT("/:id", admin, rc.UpdateRoom)
			rooms.DELETE("/:id", admin, rc.DeleteRoom)

			rooms.PUT("/:id/occupy", rc.Occupy)
			rooms.PUT("/:id/checkout", rc.CheckOut)
			rooms.GET("/:id/receipt", rc.Receipt)

			rooms.POST("/:id/products", rc.AddProduct)
			rooms.POST("/:id/extras", rc.AddExtra)
			rooms.POST("/:id/payments", rc.AddPayment)

			rooms.DELETE("/:id/products/:index", rc.RemoveLineItem(models.KindProduct))
			rooms.DELETE("/:id/extras/:index", rc.RemoveLineItem(models.KindExtra))
			rooms.DELETE("/:id/payments/:index", rc.RemoveLineItem(models.KindPayment))
		}

		guests := api.Group("/guests", protect)
		{
			guests.GET("", gc.GetGuests)
			guests.GET("/:id", gc.GetGuest)
			guests.POST("", gc.CreateGuest)
			guests.PUT("/:id", gc.UpdateGuest)
			guests.DELETE("/:id", admin, gc.DeleteGuest)
		}
	}

	return r
}
