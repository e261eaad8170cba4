package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"office-pricing/internal/api/handlers"
	"office-pricing/internal/api/middleware"
	"office-pricing/internal/config"
	"office-pricing/internal/service"
	"office-pricing/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("PRICING_DB")
	if dbPath == "" {
		dbPath = "pricing.db"
	}
	cfgPath := os.Getenv("PRICING_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/pricing_rules.yaml"
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load pricing rules")
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", dbPath).Msg("failed to open store")
	}
	defer st.Close()

	svc := service.New(st, cfg)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(splitOrigins(os.Getenv("CORS_ORIGINS"))))

	pricingHandler := handlers.NewPricingHandler(svc)
	overrideHandler := handlers.NewOverrideHandler(svc)
	chatHandler := handlers.NewChatHandler(svc)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/pricing", pricingHandler.ListPricing)
		api.GET("/pricing/:location", pricingHandler.GetPricing)

		api.GET("/overrides/:location", overrideHandler.ListOverrides)
		api.POST("/overrides", middleware.AnalystAuth(jwtSecret), overrideHandler.CreateOverride)
	}

	router.POST("/webhooks/chat", chatHandler.HandleMessage)

	addr := fmt.Sprintf(":%s", port)
	log.Info().Str("addr", addr).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func splitOrigins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
