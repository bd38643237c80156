// Package server wires the application together: configuration, database,
// services, and the HTTP router.
package server

import (
	"fmt"
	"net/http"
	"time"

	"speakerbook/internal/accounts"
	"speakerbook/internal/bookings"
	"speakerbook/internal/calendar"
	"speakerbook/internal/config"
	"speakerbook/internal/database"
	"speakerbook/internal/email"
	"speakerbook/internal/speakers"
	"speakerbook/internal/token"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg *config.Config
	db  database.Service

	tokens          *token.Manager
	accountsHandler *accounts.Handler
	speakersHandler *speakers.Handler
}

// New creates and configures a new HTTP server. The database service is
// constructed by the caller and passed in so its lifecycle stays under
// the caller's control.
func New(cfg *config.Config, db database.Service) *http.Server {
	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.TokenTTL)

	accountRepo := accounts.NewRepository(db)
	speakerRepo := speakers.NewRepository(db)
	sessionRepo := bookings.NewRepository(db)

	sender := email.NewSender(email.NewConfig())
	sink := calendar.NewSink(calendar.NewConfig())

	accountService := accounts.NewService(accountRepo, speakerRepo, sessionRepo, tokens, sender, sink)
	speakerService := speakers.NewService(speakerRepo, sessionRepo, tokens)

	s := &Server{
		cfg:             cfg,
		db:              db,
		tokens:          tokens,
		accountsHandler: accounts.NewHandler(accountService),
		speakersHandler: speakers.NewHandler(speakerService),
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
