// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/jvgaigals/gemini-tts-server/config"
	"github.com/jvgaigals/gemini-tts-server/internal/api"
	"github.com/jvgaigals/gemini-tts-server/internal/assets"
	"github.com/jvgaigals/gemini-tts-server/internal/cache"
	"github.com/jvgaigals/gemini-tts-server/internal/database"
	"github.com/jvgaigals/gemini-tts-server/internal/synth"
	"github.com/jvgaigals/gemini-tts-server/internal/tts"
	"github.com/jvgaigals/gemini-tts-server/internal/usage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading config: %s", err)
	}

	// Refuse to serve without a credential; checked before any listener binds.
	if (cfg.Engine == "" || cfg.Engine == "gemini") && cfg.Gemini.APIKey == "" {
		log.Fatalf("GEMINI_API_KEY is required")
	}

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	usageService := usage.NewService(db)

	engine, err := tts.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to create TTS engine: %v", err)
	}

	store, err := assets.NewStore(cfg.Server.AssetsDir)
	if err != nil {
		log.Fatalf("Failed to initialize asset store: %v", err)
	}

	gateway := synth.NewGateway(engine, cache.New(cache.DefaultTTL), usageService)

	r := mux.NewRouter()
	api.RegisterRoutes(r, api.NewHandler(gateway, store, usageService, cfg))

	// Persisted WAV assets are served statically by name
	r.PathPrefix(api.AudioPathPrefix).Handler(
		http.StripPrefix(api.AudioPathPrefix, http.FileServer(http.Dir(store.Dir()))))

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	handler := c.Handler(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("TTS server listening on port %s (engine: %s, model: %s, voice: %s)",
			cfg.Server.Port, engine.Name(), cfg.Gemini.Model, cfg.Gemini.Voice)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(shutdownCtx)
}
