// Package rest provides functionality for initializing a server.
package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	"github.com/rs/zerolog"
	"github.com/rychardsson/go-bank-api/internal/api/rest/handlers"
	"github.com/rychardsson/go-bank-api/internal/api/rest/middleware"
	"github.com/rychardsson/go-bank-api/internal/config"
	"github.com/rychardsson/go-bank-api/internal/service/processor/v1/processor"
	"github.com/rychardsson/go-bank-api/internal/service/secretary/v1/secretary"
	"github.com/rychardsson/go-bank-api/internal/storage/v1/inpmem"
)

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, log *zerolog.Logger, wg *sync.WaitGroup) (server *http.Server, err error) {
	//initialize secretary
	secretaryService, err := secretary.NewSecretaryService(cfg.SecretConfig)
	if err != nil {
		return nil, err
	}

	// initialize token handler
	tokenHandler, err := middleware.NewTokenHandler(secretaryService, cfg.SecretConfig)
	if err != nil {
		return nil, err
	}

	// initialize storage
	storage, err := inpmem.InitStorage(ctx, cfg.StorageConfig, log, wg)
	if err != nil {
		return nil, err
	}

	// initialize main service
	mainService, err := processor.InitService(storage, secretaryService)
	if err != nil {
		return nil, err
	}

	// initialize handlers
	urlHandler, err := handlers.InitHandlers(mainService, cfg.ServerConfig, log)
	if err != nil {
		return nil, err
	}

	// initialize server and set routing
	r := chi.NewRouter()
	r.Use(middleware.CompressHandle)
	r.Use(middleware.DecompressHandle)
	loginGroup := r.Group(nil)
	mainGroup := r.Group(nil)
	mainGroup.Use(tokenHandler.TokenHandle) // authentication is not used for login.register routes
	loginGroup.Post("/api/user/register", urlHandler.HandleRegister())
	loginGroup.Post("/api/user/login", urlHandler.HandleLogin())
	mainGroup.Post("/api/user/account", urlHandler.HandleNewAccount())
	mainGroup.Get("/api/user/account", urlHandler.HandleGetAccount())
	mainGroup.Post("/api/user/account/deposit", urlHandler.HandleNewDeposit())
	mainGroup.Post("/api/user/account/withdraw", urlHandler.HandleNewWithdrawal())
	mainGroup.Get("/api/user/account/statement", urlHandler.HandleGetStatement())

	srv := &http.Server{
		Addr:         cfg.ServerConfig.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return srv, nil
}
