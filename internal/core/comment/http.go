// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comment implements threaded discussion on comics and chapters.

# Routing Strategy

  - Public (v1): Reading threads is open to all visitors.
  - Authenticated (v1): Posting and deleting require a signed-in user;
    deletion additionally checks ownership or moderator rank.
*/
package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/internal/platform/sec"
	"github.com/taibuivan/hikari/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/{id}", handler.listThread)

	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/", handler.post)
		authed.Delete("/{id}", handler.remove)
	})

	return router
}

/*
GET /api/v1/comments/{id}?type=comic|chapter&parent_only.

Description: One page of the target's comment threads, newest first, with
author summaries and one level of replies. parent_only skips replies.

Response:
  - 200: []Comment: Paginated threads
  - 400: Unknown type
*/
func (handler *Handler) listThread(writer http.ResponseWriter, request *http.Request) {
	targetID := requestutil.ID(request, "id")
	queryParams := request.URL.Query()
	paginationParams := pagination.FromRequest(request)

	parentOnly := queryParams.Get("parent_only") == "true"

	comments, total, err := handler.service.ListThread(request.Context(),
		queryParams.Get("type"), targetID, parentOnly,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// postCommentRequest is the inbound JSON schema for posting.
type postCommentRequest struct {
	ComicID   string `json:"comic_id"`
	ChapterID string `json:"chapter_id"`
	ParentID  string `json:"parent_id"`
	Content   string `json:"content"`
}

/*
POST /api/v1/comments.

Response:
  - 201: Comment: The published comment
  - 400: Missing content or ambiguous target
  - 404: Parent comment not found
*/
func (handler *Handler) post(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload postCommentRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment := &Comment{
		ComicID:   payload.ComicID,
		ChapterID: payload.ChapterID,
		ParentID:  payload.ParentID,
		Content:   payload.Content,
	}

	if err := handler.service.Post(request.Context(), userID, comment); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Description: Author or moderator-and-above only.

Response:
  - 204: Deleted (replies cascade)
  - 403: Not the author and below moderator rank
  - 404: Comment not found
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	commentID := requestutil.ID(request, "id")
	if err := handler.service.Remove(request.Context(), commentID, claims.UserID, sec.UserRole(claims.Role)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
