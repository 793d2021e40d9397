// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Curated HTTP layer.

# Routing Strategy

The public endpoints live under /comics/popular and /comics/recommended
next to the comic feed routes, while management lives under /curated, so
the handler registers full paths on the API root router instead of
returning a mountable subrouter. The /comics/... paths must be attached
before the comic subrouter is mounted so the static segments win over
the {identifier} parameter.

  - Public (v1): Popular and recommended list reads.
  - Restricted (v1): List membership management requiring the Admin role.
*/
package curated

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

// # Handler Implementation

// Handler implements the HTTP layer for curated lists.
type Handler struct {
	service *Service
}

// NewHandler constructs a new curated [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches curated list endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {

	// ## Public List Endpoints
	api.Get("/comics/popular", handler.listPopular)
	api.Get("/comics/recommended", handler.listRecommended)

	// ## List Management (Admin Protected)
	api.Route("/curated", func(curatedRoute chi.Router) {
		curatedRoute.Use(middleware.RequireRole(sec.RoleAdmin))

		curatedRoute.Post("/popular", handler.addPopular)
		curatedRoute.Delete("/popular/{id}", handler.removePopular)
		curatedRoute.Post("/recommended", handler.addRecommended)
		curatedRoute.Delete("/recommended/{id}", handler.removeRecommended)
	})
}

// # Public Endpoints

/*
GET /api/v1/comics/popular?type=daily|weekly|monthly|all_time.

Description: The popular list of one time window. Omitting type selects
all_time.

Response:
  - 200: []PopularEntry
  - 400: Unknown window type
*/
func (handler *Handler) listPopular(writer http.ResponseWriter, request *http.Request) {

	entries, err := handler.service.Popular(request.Context(), request.URL.Query().Get("type"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

/*
GET /api/v1/comics/recommended.

Response:
  - 200: []RecommendedEntry
*/
func (handler *Handler) listRecommended(writer http.ResponseWriter, request *http.Request) {

	entries, err := handler.service.Recommended(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entries)
}

// # Management Endpoints

// popularEntryRequest carries the comic and window of a popular entry.
type popularEntryRequest struct {
	ComicID string `json:"comic_id"`
	Window  string `json:"window"`
}

/*
POST /api/v1/curated/popular. (Admin)

Response:
  - 201: PopularEntry
  - 404: Comic not found
  - 409: Comic already in this window
*/
func (handler *Handler) addPopular(writer http.ResponseWriter, request *http.Request) {

	var payload popularEntryRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddPopular(request.Context(), payload.ComicID, payload.Window)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
DELETE /api/v1/curated/popular/{id}. (Admin)

Response:
  - 204: Entry removed
  - 404: Entry not found
*/
func (handler *Handler) removePopular(writer http.ResponseWriter, request *http.Request) {

	if err := handler.service.RemovePopular(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// recommendedEntryRequest carries the comic of a recommended entry.
type recommendedEntryRequest struct {
	ComicID string `json:"comic_id"`
}

/*
POST /api/v1/curated/recommended. (Admin)

Response:
  - 201: RecommendedEntry
  - 404: Comic not found
  - 409: Comic already recommended
*/
func (handler *Handler) addRecommended(writer http.ResponseWriter, request *http.Request) {

	var payload recommendedEntryRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entry, err := handler.service.AddRecommended(request.Context(), payload.ComicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entry)
}

/*
DELETE /api/v1/curated/recommended/{id}. (Admin)

Response:
  - 204: Entry removed
  - 404: Entry not found
*/
func (handler *Handler) removeRecommended(writer http.ResponseWriter, request *http.Request) {

	if err := handler.service.RemoveRecommended(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
