package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/vantage-apps/keystone/internal/config"
	"github.com/vantage-apps/keystone/internal/db"
	"github.com/vantage-apps/keystone/internal/events"
	"github.com/vantage-apps/keystone/internal/redis"
)

func main() {
	// load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// initialize PostgreSQL
	conn, err := db.Init(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(conn, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(conn)

	// optional collaborators; both stay nil (and inert) unless configured
	var limiter *redis.LoginLimiter
	if cfg.RedisAddress != "" {
		limiter = redis.NewLoginLimiter(cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword)
		log.Info().Str("address", cfg.RedisAddress).Msg("login throttling enabled")
	}

	var publisher *events.Publisher
	if cfg.MQTTBrokerURL != "" {
		publisher, err = events.NewPublisher(cfg.MQTTBrokerURL, "keystone-server")
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt init")
		}
		defer publisher.Close()
	}

	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, cfg, store, limiter, publisher)

	// start
	log.Info().Str("address", cfg.ServerAddress).Msg("listening")
	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
