package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/amizade-app/companion-api/internal/config"
	dbpkg "github.com/amizade-app/companion-api/internal/db"
	"github.com/amizade-app/companion-api/internal/logger"
	"github.com/amizade-app/companion-api/internal/routes"
	"github.com/amizade-app/companion-api/internal/timezone"
)

func main() {

	cfg := config.Load()
	timezone.Configure(cfg.Timezone)

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info("server listening", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
