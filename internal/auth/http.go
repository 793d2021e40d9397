// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Auth HTTP layer.

# Routing Strategy

Session endpoints live under /auth while the one-time bootstrap endpoint
sits at the API root as /setup, so the handler registers full paths on
the root router.

The refresh token never appears in a JSON body: it only travels in an
HttpOnly cookie scoped to the /auth path.
*/
package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/apperr"
	"github.com/taibuivan/hikari/internal/platform/config"
	"github.com/taibuivan/hikari/internal/platform/constants"
	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for authentication.
type Handler struct {
	service *Service
	config  *config.Config
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service, config *config.Config) *Handler {
	return &Handler{service: service, config: config}
}

// RegisterRoutes attaches authentication endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {

	api.Get("/setup", handler.setup)

	api.Route("/auth", func(authRoute chi.Router) {
		authRoute.Post("/register", handler.register)
		authRoute.Post("/login", handler.login)
		authRoute.Post("/refresh", handler.refresh)
		authRoute.Post("/logout", handler.logout)

		authRoute.Group(func(authenticated chi.Router) {
			authenticated.Use(middleware.RequireAuth)
			authenticated.Get("/me", handler.me)
		})
	})
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// # Endpoints

/*
POST /api/v1/auth/register.

Response:
  - 201: User: The created account
  - 400: Validation failure
  - 409: Username or email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var payload registerRequest

	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("username", payload.Username).
		MinLen("username", payload.Username, 3).
		MaxLen("username", payload.Username, 30).
		Required("email", payload.Email).
		Email("email", payload.Email).
		Required("password", payload.Password).
		MinLen("password", payload.Password, 8)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), RegisterInput{
		Username: payload.Username,
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login.

Description: On success the refresh token is set as an HttpOnly cookie
and the access token returned in the body.

Response:
  - 200: access_token and user profile
  - 401: Invalid credentials or disabled account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var payload loginRequest

	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required("login", payload.Login)
	validator.Required("password", payload.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), LoginInput{
		Login:    payload.Login,
		Password: payload.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

/*
POST /api/v1/auth/refresh.

Description: Rotates the refresh token cookie and returns a fresh access
token.

Response:
  - 200: access_token
  - 401: Missing, invalid or expired refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {

	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Missing refresh token"))
		return
	}

	session, err := handler.service.RefreshSession(request.Context(), cookie.Value)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)

	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
	})
}

/*
POST /api/v1/auth/logout.

Response:
  - 204: Session revoked, cookie cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {

	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err == nil && cookie.Value != "" {
		_ = handler.service.Logout(request.Context(), cookie.Value)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
GET /api/v1/auth/me.

Response:
  - 200: User: The authenticated account
  - 401: Missing or invalid access token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Me(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
GET /api/v1/setup.

Description: Creates the first admin account from the configured
bootstrap credentials.

Response:
  - 200: The created admin
  - 409: Platform already set up
*/
func (handler *Handler) setup(writer http.ResponseWriter, request *http.Request) {

	admin, err := handler.service.Bootstrap(request.Context(),
		handler.config.AdminUsername,
		handler.config.AdminEmail,
		handler.config.AdminPassword,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, admin)
}

// setRefreshCookie installs the session's refresh token on the response.
func setRefreshCookie(writer http.ResponseWriter, session *Session) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
