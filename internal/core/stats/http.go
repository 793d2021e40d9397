// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package stats

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

// Handler implements the HTTP layer for dashboard statistics.
type Handler struct {
	service *Service
}

// NewHandler constructs a new stats [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] exposing the dashboard endpoint.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/stats", handler.overview)

	return router
}

/*
GET /api/v1/admin/stats. (Admin)

Response:
  - 200: Overview: Platform-wide totals
*/
func (handler *Handler) overview(writer http.ResponseWriter, request *http.Request) {

	overview, err := handler.service.Overview(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, overview)
}
