package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"health-intake/internal/config"
	"health-intake/internal/intake"
	"health-intake/internal/llm"
	"health-intake/internal/logger"
	"health-intake/internal/platform/metrics"
	"health-intake/internal/report"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("building logger: %v", err)
	}
	defer zlog.Sync()

	// 2. Clients
	llmClient, err := llm.NewOpenAIClient(llm.Config{
		APIKey:      cfg.OpenAI.APIKey,
		ChatModel:   cfg.OpenAI.ChatModel,
		ReportModel: cfg.OpenAI.ReportModel,
	})
	if err != nil {
		zlog.Fatal("creating openai client", zap.Error(err))
	}

	profile, err := intake.ProfileByName(cfg.Intake.Profile)
	if err != nil {
		zlog.Fatal("selecting intake profile", zap.Error(err))
	}

	// 3. Services
	collector := metrics.NewCollector("health_intake")
	renderer := report.NewRenderer(report.WithFontPaths(cfg.PDF.FontPaths...))
	svc := intake.NewService(profile, llmClient, renderer, zlog, collector)
	handler := intake.NewHandler(svc, zlog)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(collector.Middleware)

	// CORS for the chat frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Method("GET", "/metrics", collector.Handler())
	r.Route("/api", func(r chi.Router) {
		intake.RegisterRoutes(r, handler)
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zlog.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("profile", profile.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}
