// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package bookmark implements the user library: saved comics with their
reading activity.

# Routing Strategy

  - Authenticated (v1): Every endpoint requires a signed-in user; the
    library is strictly per-account.
*/
package bookmark

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the bookmark library.
type Handler struct {
	service *Service
}

// NewHandler constructs a new bookmark [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the library endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Get("/details", handler.listDetailed)
	router.Post("/", handler.add)
	router.Delete("/{comicID}", handler.remove)

	return router
}

// # Library Endpoints

/*
GET /api/v1/bookmarks.

Description: The user's bookmarks with comic summaries, newest first.

Response:
  - 200: []Bookmark: Paginated library page
  - 401: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	bookmarks, total, err := handler.service.List(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, bookmarks, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/bookmarks/details.

Description: Same page as GET /bookmarks, with each comic's latest
chapter attached for unread-activity display.

Response:
  - 200: []DetailedBookmark
  - 401: Authentication required
*/
func (handler *Handler) listDetailed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	bookmarks, total, err := handler.service.ListDetailed(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, bookmarks, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// addBookmarkRequest selects the comic to bookmark.
type addBookmarkRequest struct {
	ComicID string `json:"comic_id"`
}

/*
POST /api/v1/bookmarks.

Description: Bookmarks a comic for the authenticated user.

Response:
  - 201: Bookmark: The created bookmark
  - 404: Comic not found
  - 409: Already bookmarked (details carry the comic_id)
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload addBookmarkRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookmark, err := handler.service.Add(request.Context(), userID, payload.ComicID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bookmark)
}

/*
DELETE /api/v1/bookmarks/{comicID}.

Response:
  - 204: Removed
  - 404: No bookmark for this comic
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comicID := requestutil.ID(request, "comicID")
	if err := handler.service.Remove(request.Context(), userID, comicID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
