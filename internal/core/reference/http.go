// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Reference HTTP layer.

# Access Control

  - Public: Listing any reference kind for filters and pickers.
  - Admin: Creating and deleting entries.
*/
package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/internal/platform/sec"
)

// Handler implements the HTTP layer for reference master data.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// kindPaths maps URL segments onto reference kinds.
var kindPaths = map[string]Kind{
	"genres":  KindGenre,
	"authors": KindAuthor,
	"artists": KindArtist,
	"formats": KindFormat,
}

// Routes returns a [chi.Router] exposing the four reference collections.
// All four kinds share one handler set discriminated by path.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	for path, kind := range kindPaths {
		kind := kind
		router.Route("/"+path, func(kindRoute chi.Router) {
			kindRoute.Get("/", handler.list(kind))

			kindRoute.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireRole(sec.RoleAdmin))
				admin.Post("/", handler.create(kind))
				admin.Delete("/{id}", handler.remove(kind))
			})
		})
	}

	return router
}

/*
GET /api/v1/{genres|authors|artists|formats}.

Description: Every entry of the kind sorted by name. Reference lists are
small and unpaginated; they feed filter dropdowns.

Response:
  - 200: []Entry: Success
*/
func (handler *Handler) list(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		entries, err := handler.service.List(request.Context(), kind)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.OK(writer, entries)
	}
}

// createEntryRequest carries the new entry's name.
type createEntryRequest struct {
	Name string `json:"name"`
}

/*
POST /api/v1/{genres|authors|artists|formats}. (Admin)

Response:
  - 201: Entry: The created entry
  - 400: Missing or oversized name
  - 409: Name already exists for this kind
*/
func (handler *Handler) create(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var payload createEntryRequest
		if err := requestutil.DecodeJSON(request, &payload); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entry, err := handler.service.Create(request.Context(), kind, payload.Name)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.Created(writer, entry)
	}
}

/*
DELETE /api/v1/{genres|authors|artists|formats}/{id}. (Admin)

Response:
  - 204: Deleted, junction rows detached
  - 404: Entry not found
*/
func (handler *Handler) remove(kind Kind) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id := requestutil.ID(request, "id")

		if err := handler.service.Delete(request.Context(), kind, id); err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.NoContent(writer)
	}
}
