package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"backoffice/internal/cache"
	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/events"
	"backoffice/internal/logger"
	"backoffice/internal/mailer"
	"backoffice/internal/routes"
)

func main() {
	logger.Init("backoffice-api")

	cfg := config.Load()
	client := database.Connect(cfg.MongoURI)
	db := client.Database(cfg.MongoDB)

	var store cache.Store
	if cfg.RedisAddr != "" {
		store = cache.NewRedis(cfg.RedisAddr, cfg.CacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	} else {
		store = cache.NewMemory(cfg.CacheTTL)
	}

	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("using kafka publisher")
	}

	var mail mailer.Mailer = mailer.NopMailer{}
	if cfg.SendGridAPIKey != "" {
		mail = mailer.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromAddr)
	}

	router := gin.Default()
	routes.RegisterRoutes(router, routes.Deps{
		DB:        db,
		Cache:     store,
		Publisher: publisher,
		Mailer:    mail,
	})

	log.Info().Str("port", cfg.Port).Msg("server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
