// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package vote implements upvotes on comics and chapters.

# Routing Strategy

  - Authenticated (v1): Voting always acts on behalf of the signed-in user.
*/
package vote

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for voting.
type Handler struct {
	service *Service
}

// NewHandler constructs a new vote [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the voting endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.cast)
	router.Delete("/{id}", handler.retract)

	return router
}

// castVoteRequest names exactly one vote target.
type castVoteRequest struct {
	ComicID   string `json:"comic_id"`
	ChapterID string `json:"chapter_id"`
}

/*
POST /api/v1/votes.

Description: Casts a vote on exactly one of comic_id/chapter_id.

Response:
  - 201: Vote: The created vote
  - 400: Zero or two targets named
  - 404: Target not found
  - 409: Already voted (details carry the conflicting id)
*/
func (handler *Handler) cast(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload castVoteRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	vote, err := handler.service.Cast(request.Context(), userID, payload.ComicID, payload.ChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, vote)
}

/*
DELETE /api/v1/votes/{id}?type=comic|chapter.

Description: Retracts the user's vote on the target named by {id}.

Response:
  - 204: Retracted
  - 400: Unknown type
  - 404: No vote on this target
*/
func (handler *Handler) retract(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	targetID := requestutil.ID(request, "id")
	targetType := request.URL.Query().Get("type")

	if err := handler.service.Retract(request.Context(), userID, targetID, targetType); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
