package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tidyhome-services/blog-backend/database"
	"github.com/tidyhome-services/blog-backend/errs"
	"github.com/tidyhome-services/blog-backend/models"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
	tokens    TokenIssuer
}

func newAuthHandler(userRepo *database.UserRepo, tokens TokenIssuer, exposeErrors bool) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger, exposeErrors),
		logger:    logger,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authPayload is the data envelope for register and login responses.
type authPayload struct {
	Token string      `json:"token"`
	User  userPayload `json:"user"`
}

type userPayload struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// register creates an admin account and issues a token for it.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := parseCredentials(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		existing, err := h.userRepo.FindByEmail(r.Context(), creds.Email)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("email already registered"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not hash password", err))
			return
		}

		user := models.User{Email: creds.Email, PasswordHash: string(hash)}
		if err := h.userRepo.Add(r.Context(), &user); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.tokens.Issue(user.ID, user.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not issue token", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, authPayload{
			Token: token,
			User:  userPayload{ID: user.ID, Email: user.Email},
		})
	}
}

// login verifies the credentials and issues a fresh token.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		creds, err := parseCredentials(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.userRepo.FindByEmail(r.Context(), creds.Email)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		// Same response for unknown email and wrong password.
		if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid email or password"))
			return
		}

		token, err := h.tokens.Issue(user.ID, user.Email)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("could not issue token", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, authPayload{
			Token: token,
			User:  userPayload{ID: user.ID, Email: user.Email},
		})
	}
}

// verify confirms the bearer token is still valid; the auth middleware has
// already done the actual check by the time this runs.
func (h authHandler) verify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid token"))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("invalid token"))
			return
		}

		user, err := h.userRepo.FindByID(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewUnauthorizedError("user no longer exists"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, userPayload{ID: user.ID, Email: user.Email})
	}
}

func parseCredentials(r *http.Request) (*credentials, error) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		return nil, errs.Malformed("request body")
	}

	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		return nil, errs.NewBadRequestError("email and password are required")
	}

	return &creds, nil
}
