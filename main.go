package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tresor228/pitch-ia/backend"
	"github.com/tresor228/pitch-ia/config"
	"github.com/tresor228/pitch-ia/routes"
	"github.com/tresor228/pitch-ia/service"
)

func main() {
	cfg := config.Load()
	config.SetupLogging(cfg)
	if logrus.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logrus.WithField("component", "server")

	store, err := backend.OpenStore(cfg.StorageFile)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	handler := backend.NewHandler(newGenerator(cfg, log), store, log)
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           routes.Web(handler, cfg.AllowedOrigins, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("Server démarré sur %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}
}

// newGenerator retourne nil si aucune clé n'est configurée: le serveur
// répond alors 503 sur /generate-pitch.
func newGenerator(cfg *config.Config, log logrus.FieldLogger) service.Generator {
	if cfg.DemoMode {
		log.Warn("Mode démo actif: les pitchs sont générés localement")
		return service.DemoGenerator{}
	}
	gen, err := service.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIModel, log)
	if err != nil {
		log.WithError(err).Warn("Génération désactivée")
		return nil
	}
	return gen
}
