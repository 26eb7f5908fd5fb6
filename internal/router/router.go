package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/datadues/campaign-api/internal/handlers"
	"github.com/datadues/campaign-api/internal/middleware"
	"github.com/datadues/campaign-api/internal/store"
)

func NewRouter(handler *handlers.Handler, entityStore *store.Store, allowedOrigins []string, defaultCampaignSlug string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", "X-Campaign-Slug"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	campaignScoped := middleware.CampaignMiddleware(entityStore, defaultCampaignSlug)
	authenticated := middleware.AuthMiddleware(entityStore)

	api := r.Group("/api")
	{
		api.GET("/health", handler.HealthCheck)
		api.GET("/ws/campaigns/:campaign_id", authenticated, handler.WebSocket)

		api.GET("/campaigns", handler.ListCampaigns)
		api.GET("/campaigns/current", campaignScoped, handler.CurrentCampaign)

		api.GET("/users/:user_id/campaigns/:campaign_id/actions", handler.UserCampaignActions)
		api.GET("/users/:user_id/actions", handler.ListUserActions)

		me := api.Group("/me", authenticated)
		{
			me.GET("", handler.Me)
			me.GET("/actions", campaignScoped, handler.MyActions)
		}

		api.PATCH("/user-actions/:user_action_id", authenticated, handler.UpdateUserAction)
		api.POST("/enrollment", authenticated, campaignScoped, handler.Enroll)
		api.POST("/actions/data-dues", authenticated, campaignScoped, handler.CreateDataDuesAction)
	}

	return r
}
