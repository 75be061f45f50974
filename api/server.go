package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/tidyhome-services/blog-backend/config"
	"github.com/tidyhome-services/blog-backend/database"
	"github.com/tidyhome-services/blog-backend/services"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(db database.Database, images services.ImageStore) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()
	router, err := NewRouter(db, images, c, startupTime)
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 60)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 60)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

// NewRouter assembles the chi router with middleware and all routes. Exposed
// separately so handler tests can drive the full stack through httptest.
func NewRouter(db database.Database, images services.ImageStore, c map[string]string, startupTime time.Time) (*chi.Mux, error) {
	jwtSecret := config.GetString(c, "JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}
	tokenTTL := time.Duration(config.GetInt(c, "TOKEN_TTL_HOURS", 24)) * time.Hour
	exposeErrors := !config.IsProduction(c)

	tokens := NewTokenIssuer(jwtSecret, tokenTTL)
	handlers := initializeHandlers(db, images, tokens, startupTime, exposeErrors)
	auth := newAuthMiddleware(tokens, exposeErrors)

	router := chi.NewRouter()
	router.Use(RecoverPanics)
	router.Use(RequestLoggingMiddleware)

	allowedOrigins := strings.Split(config.GetString(c, "ACCEPTED_ORIGINS", "*"), ",")
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	spaDir := config.GetString(c, "ADMIN_PANEL_DIR", "admin-panel/build")
	setupRoutes(router, handlers, auth, spaDir)

	return router, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefulCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefulCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HTTP server gracefully shut down")
	}
}
