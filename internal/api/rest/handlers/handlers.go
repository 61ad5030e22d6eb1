// Package handlers provides API endpoint handling functionality.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	handlersErrors "github.com/rychardsson/go-bank-api/internal/api/rest/errors"
	"github.com/rychardsson/go-bank-api/internal/config"
	"github.com/rychardsson/go-bank-api/internal/models/modeldto"
	ledgerErrors "github.com/rychardsson/go-bank-api/internal/service/ledger/v1/errors"
	"github.com/rychardsson/go-bank-api/internal/service/ledger/v1/ledger"
	"github.com/rychardsson/go-bank-api/internal/service/processor/v1"
	serviceErrors "github.com/rychardsson/go-bank-api/internal/service/processor/v1/errors"
	storageErrors "github.com/rychardsson/go-bank-api/internal/storage/v1/errors"
)

// Handler defines attributes of a struct available to its methods.
type Handler struct {
	service      processor.Processor
	serverConfig *config.ServerConfig
	log          *zerolog.Logger
}

// InitHandlers initializes a handler object.
func InitHandlers(mainService processor.Processor, serverConfig *config.ServerConfig, log *zerolog.Logger) (*Handler, error) {
	if mainService == nil {
		return nil, &handlersErrors.HandlersFoundNilArgument{Msg: "nil processor was passed to handlers initializer"}
	}
	return &Handler{service: mainService, serverConfig: serverConfig, log: log}, nil
}

// HandleRegister processes user register requests.
func (h *Handler) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		var newUser modeldto.NewUser
		if !h.readJSONBody(w, r, &newUser) {
			return
		}
		h.log.Info().Msg(fmt.Sprintf("new user register request detected for CPF %s", newUser.CPF))
		if newUser.Name == "" || newUser.CPF == "" || newUser.Password == "" {
			h.log.Error().Msg("HandleRegister failed")
			http.Error(w, "Empty values are not allowed", http.StatusBadRequest)
			return
		}
		user, err := h.service.AddNewUser(ctx, newUser)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleRegister failed")
			var contextTimeoutExceededError *storageErrors.ContextTimeoutExceededError
			var alreadyExistsError *storageErrors.AlreadyExistsError
			var illegalCredentialsError *serviceErrors.ServiceIllegalCredentials
			if errors.As(err, &contextTimeoutExceededError) {
				http.Error(w, err.Error(), http.StatusGatewayTimeout)
			} else if errors.As(err, &alreadyExistsError) {
				w.WriteHeader(http.StatusConflict)
			} else if errors.As(err, &illegalCredentialsError) {
				http.Error(w, err.Error(), http.StatusBadRequest)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		h.writeJSONBody(w, http.StatusCreated, user)
	}
}

// HandleLogin processes user login requests.
func (h *Handler) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		var credentials modeldto.Credentials
		if !h.readJSONBody(w, r, &credentials) {
			return
		}
		h.log.Info().Msg(fmt.Sprintf("new login request detected for CPF %s", credentials.Login))
		if credentials.Login == "" || credentials.Password == "" {
			h.log.Error().Msg("HandleLogin failed")
			http.Error(w, "Empty values are not allowed", http.StatusBadRequest)
			return
		}
		token, err := h.service.LoginUser(ctx, credentials)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleLogin failed")
			var contextTimeoutExceededError *storageErrors.ContextTimeoutExceededError
			var notFoundError *storageErrors.NotFoundError
			if errors.As(err, &contextTimeoutExceededError) {
				http.Error(w, err.Error(), http.StatusGatewayTimeout)
			} else if errors.As(err, &notFoundError) {
				w.WriteHeader(http.StatusUnauthorized)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		w.Header().Set("Authorization", "Bearer "+token.AccessToken)
		h.writeJSONBody(w, http.StatusOK, token)
	}
}

// HandleNewAccount processes account creation requests.
func (h *Handler) HandleNewAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleNewAccount failed")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		// account type defaults to checking, an empty body is acceptable
		var newAccount modeldto.NewAccount
		b, err := ioutil.ReadAll(r.Body)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleNewAccount failed")
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if len(b) > 0 {
			if err := json.Unmarshal(b, &newAccount); err != nil {
				h.log.Error().Err(err).Msg("HandleNewAccount failed")
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		h.log.Info().Msg(fmt.Sprintf("new account request detected for user %s", userID))
		account, err := h.service.AddNewAccount(ctx, userID, newAccount)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleNewAccount failed")
			var contextTimeoutExceededError *storageErrors.ContextTimeoutExceededError
			var accountAlreadyExistsError *storageErrors.AccountAlreadyExistsError
			var notFoundError *storageErrors.NotFoundError
			var illegalAccountTypeError *serviceErrors.ServiceIllegalAccountType
			if errors.As(err, &contextTimeoutExceededError) {
				http.Error(w, err.Error(), http.StatusGatewayTimeout)
			} else if errors.As(err, &accountAlreadyExistsError) {
				http.Error(w, err.Error(), http.StatusConflict)
			} else if errors.As(err, &notFoundError) {
				http.Error(w, err.Error(), http.StatusNotFound)
			} else if errors.As(err, &illegalAccountTypeError) {
				http.Error(w, err.Error(), http.StatusBadRequest)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		h.writeJSONBody(w, http.StatusCreated, account)
	}
}

// HandleGetAccount processes account query requests.
func (h *Handler) HandleGetAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleGetAccount failed")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		account, err := h.service.GetAccount(ctx, userID)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleGetAccount failed")
			h.writeAccountLookupError(w, err)
			return
		}
		h.writeJSONBody(w, http.StatusOK, account)
	}
}

// HandleNewDeposit processes new deposit requests.
func (h *Handler) HandleNewDeposit() http.HandlerFunc {
	return h.handleNewTransaction(ledger.KindDeposit)
}

// HandleNewWithdrawal processes new withdrawal requests.
func (h *Handler) HandleNewWithdrawal() http.HandlerFunc {
	return h.handleNewTransaction(ledger.KindWithdrawal)
}

// HandleGetStatement processes statement query requests.
func (h *Handler) HandleGetStatement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleGetStatement failed")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		statement, err := h.service.GetStatement(ctx, userID)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleGetStatement failed")
			h.writeAccountLookupError(w, err)
			return
		}
		h.writeJSONBody(w, http.StatusOK, statement)
	}
}

func (h *Handler) handleNewTransaction(kind ledger.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		userID, err := h.getUserID(r)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleNewTransaction failed")
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		var newTransaction modeldto.NewTransaction
		if !h.readJSONBody(w, r, &newTransaction) {
			return
		}
		h.log.Info().Msg(fmt.Sprintf("new %s request detected for user %s", kind, userID))
		transaction, err := h.service.AddNewTransaction(ctx, userID, kind, newTransaction)
		if err != nil {
			h.log.Error().Err(err).Msg("HandleNewTransaction failed")
			var contextTimeoutExceededError *storageErrors.ContextTimeoutExceededError
			var notFoundError *storageErrors.NotFoundError
			var invalidAmountError *ledgerErrors.LedgerInvalidAmount
			var notEnoughFundsError *ledgerErrors.LedgerNotEnoughFunds
			if errors.As(err, &contextTimeoutExceededError) {
				http.Error(w, err.Error(), http.StatusGatewayTimeout)
			} else if errors.As(err, &notFoundError) {
				http.Error(w, "Account was not found, create an account first", http.StatusNotFound)
			} else if errors.As(err, &invalidAmountError) {
				http.Error(w, err.Error(), http.StatusBadRequest)
			} else if errors.As(err, &notEnoughFundsError) {
				http.Error(w, err.Error(), http.StatusPaymentRequired)
			} else {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
			return
		}
		h.writeJSONBody(w, http.StatusCreated, transaction)
	}
}

// getUserID retrieves user identifier from the request metadata.
func (h *Handler) getUserID(r *http.Request) (string, error) {
	accessToken := r.Header.Get("Authorization")
	if len(accessToken) == 0 {
		return "", errors.New("token authorization required")
	}
	accessToken = strings.Replace(accessToken, "Bearer ", "", 1)
	userID, err := h.service.GetUserID(accessToken)
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (h *Handler) readJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		http.Error(w, "Invalid Content-Type", http.StatusBadRequest)
		return false
	}
	b, err := ioutil.ReadAll(r.Body)
	if err != nil {
		h.log.Error().Err(err).Msg("reading request body failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return false
	}
	err = json.Unmarshal(b, dst)
	if err != nil {
		h.log.Error().Err(err).Msg("decoding request body failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) writeJSONBody(w http.ResponseWriter, statusCode int, body interface{}) {
	resBody, err := json.Marshal(body)
	if err != nil {
		h.log.Error().Err(err).Msg("encoding response body failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, err = w.Write(resBody)
	if err != nil {
		h.log.Error().Err(err).Msg("writing response body failed")
	}
}

func (h *Handler) writeAccountLookupError(w http.ResponseWriter, err error) {
	var contextTimeoutExceededError *storageErrors.ContextTimeoutExceededError
	var notFoundError *storageErrors.NotFoundError
	if errors.As(err, &contextTimeoutExceededError) {
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	} else if errors.As(err, &notFoundError) {
		http.Error(w, "Account was not found, create an account first", http.StatusNotFound)
	} else {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
