package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vantage-apps/keystone/internal/config"
	"github.com/vantage-apps/keystone/internal/db"
	"github.com/vantage-apps/keystone/internal/events"
	"github.com/vantage-apps/keystone/internal/http/api"
	accountapi "github.com/vantage-apps/keystone/internal/http/api/accounts/endpoints"
	"github.com/vantage-apps/keystone/internal/redis"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, store db.Store, limiter *redis.LoginLimiter, publisher *events.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/",
	},
		accountapi.AccountModule(cfg.JWTSecret, store, limiter, publisher),
	)
}
