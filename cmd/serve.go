package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/geomarket/internal/analysis"
	"github.com/sells-group/geomarket/internal/model"
)

const staticVizPrefix = "/static/visualizations"

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		env, err := initAnalyzers()
		if err != nil {
			return err
		}
		defer env.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: newRouter(env.commercial, env.soil, env.vizRoot),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

type commercialService interface {
	Analyze(ctx context.Context, req model.CommercialRequest) (*model.Result, error)
}

type soilService interface {
	Analyze(ctx context.Context, req model.SoilRequest) (*model.Result, error)
}

func newRouter(commercial commercialService, soil soilService, vizRoot string) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version})
	})

	r.Post("/api/commercial/analyze", handleCommercialAnalyze(commercial, vizRoot))
	r.Get("/api/commercial/examples", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"examples": analysis.CommercialExamples()})
	})

	r.Post("/api/soil/analyze", handleSoilAnalyze(soil, vizRoot))
	r.Get("/api/soil/examples", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"examples": analysis.SoilExamples()})
	})

	r.Handle(staticVizPrefix+"/*",
		http.StripPrefix(staticVizPrefix+"/", http.FileServer(http.Dir(vizRoot))))

	return r
}

func handleCommercialAnalyze(svc commercialService, vizRoot string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.CommercialRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Location) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "location is required"})
			return
		}

		res, err := svc.Analyze(r.Context(), req)
		if err != nil {
			zap.L().Error("commercial analysis failed", zap.String("location", req.Location), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis failed"})
			return
		}
		res.RewriteVisualizations(vizRoot, staticVizPrefix)
		writeJSON(w, http.StatusOK, res)
	}
}

func handleSoilAnalyze(svc soilService, vizRoot string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.SoilRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.Location) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "location is required"})
			return
		}

		res, err := svc.Analyze(r.Context(), req)
		if err != nil {
			zap.L().Error("soil analysis failed", zap.String("location", req.Location), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "analysis failed"})
			return
		}
		res.RewriteVisualizations(vizRoot, staticVizPrefix)
		writeJSON(w, http.StatusOK, res)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
