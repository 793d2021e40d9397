// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Chapter HTTP layer.

# Routing Strategy

Chapter endpoints span both the /comics/{id}/... and /chapters/...
prefixes, so the handler registers full paths on the API root router
instead of returning a mountable subrouter.

  - Public (v1): Chapter reads, the reader view, and page lists.
  - Restricted (v1): Chapter and page management requiring the Admin role.
*/
package chapter

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/hikari/internal/platform/middleware"
	requestutil "github.com/taibuivan/hikari/internal/platform/request"
	"github.com/taibuivan/hikari/internal/platform/respond"
	"github.com/taibuivan/hikari/internal/platform/sec"
	"github.com/taibuivan/hikari/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter reading and management.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter and page endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {

	// ## Public Reading Endpoints
	api.Get("/chapters/{id}", handler.getChapter)
	api.Get("/chapters/{id}/complete", handler.getChapterComplete)
	api.Get("/chapters/{id}/pages", handler.listPages)

	// ## Content Management (Admin Protected)
	api.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/comics/{comicID}/chapters", handler.createChapter)
		admin.Post("/comics/{comicID}/chapters/bulk", handler.createChapterRange)
		admin.Patch("/chapters/{id}", handler.updateChapter)
		admin.Delete("/chapters/{id}", handler.deleteChapter)

		admin.Post("/chapters/{id}/pages", handler.addPages)
		admin.Delete("/chapters/{id}/pages/{pageNumber}", handler.deletePage)
		admin.Put("/chapters/{id}/pages/{pageNumber}/move", handler.movePage)
	})
}

// # Reading Endpoints

/*
GET /api/v1/chapters/{id}.

Description: Chapter metadata with its comic summary and previous/next
navigation. Dispatches an asynchronous view event.

Response:
  - 200: Detail
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	detail, err := handler.service.GetChapter(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
GET /api/v1/chapters/{id}/complete.

Description: The reader view: chapter, comic summary, navigation, ordered
pages and, for authenticated users, vote/read state. Opening the view
advances the user's reading history.

Response:
  - 200: CompleteView
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapterComplete(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	userID := requestutil.UserID(request)

	view, err := handler.service.GetChapterComplete(request.Context(), id, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
GET /api/v1/chapters/{id}/pages.

Response:
  - 200: []Page: Pages in reading order
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) listPages(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	pages, err := handler.service.ListPages(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, pages)
}

// # Request Payloads

// chapterRequest is the inbound JSON schema for chapter create/update.
type chapterRequest struct {
	Number      float64    `json:"chapter_number"`
	Title       string     `json:"title"`
	ReleaseDate *time.Time `json:"release_date"`
}

// bulkChapterRequest describes an inclusive integer range of chapters.
type bulkChapterRequest struct {
	Start       int        `json:"start"`
	End         int        `json:"end"`
	ReleaseDate *time.Time `json:"release_date"`
}

// addPagesRequest carries one or more image URLs to append.
type addPagesRequest struct {
	ImageURLs []string `json:"image_urls"`
}

// movePageRequest selects the swap direction for a page.
type movePageRequest struct {
	Direction string `json:"direction"`
}

// # Management Endpoints

/*
POST /api/v1/comics/{comicID}/chapters. (Admin)

Response:
  - 201: Chapter: The created chapter
  - 400: Validation failure
  - 409: Duplicate chapter number
*/
func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "comicID")

	var payload chapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter := &Chapter{
		ComicID:     comicID,
		Number:      payload.Number,
		Title:       payload.Title,
		ReleaseDate: payload.ReleaseDate,
	}

	if err := handler.service.CreateChapter(request.Context(), chapter); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
POST /api/v1/comics/{comicID}/chapters/bulk. (Admin)

Description: Creates the inclusive integer range start..end as individual
chapters sharing one release date. The whole range is created atomically.

Response:
  - 201: []Chapter: The created chapters in ascending order
  - 400: Inverted or oversized range
  - 409: A number in the range already exists
*/
func (handler *Handler) createChapterRange(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "comicID")

	var payload bulkChapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapters, err := handler.service.CreateRange(request.Context(), comicID, payload.Start, payload.End, payload.ReleaseDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapters)
}

/*
PATCH /api/v1/chapters/{id}. (Admin)

Response:
  - 200: Updated chapter
  - 404: ErrNotFound
*/
func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var payload chapterRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	update := &Chapter{
		ID:          id,
		Number:      payload.Number,
		Title:       payload.Title,
		ReleaseDate: payload.ReleaseDate,
	}

	updated, err := handler.service.UpdateChapter(request.Context(), update)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/chapters/{id}. (Admin)

Response:
  - 204: Deleted (pages cascade)
  - 404: ErrNotFound
*/
func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteChapter(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/chapters/{id}/pages. (Admin)

Description: Appends pages after the chapter's current last page, in
submission order.

Response:
  - 201: []Page: The created pages
  - 400: Empty list or invalid URL
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) addPages(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var payload addPagesRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	pages, err := handler.service.AddPages(request.Context(), id, payload.ImageURLs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, pages)
}

/*
DELETE /api/v1/chapters/{id}/pages/{pageNumber}. (Admin)

Description: Removes a page and renumbers the following pages down by one
so the sequence stays contiguous.

Response:
  - 204: Deleted
  - 404: ErrNotFound: Page not found
*/
func (handler *Handler) deletePage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	pageNumber, err := pageNumberParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeletePage(request.Context(), id, pageNumber); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/chapters/{id}/pages/{pageNumber}/move. (Admin)

Description: Swaps the page with its neighbor in the requested direction.

Request:
  - direction: string (up, down)

Response:
  - 204: Moved
  - 400: Bad direction or moving the first page up
  - 404: ErrNotFound: Page not found
*/
func (handler *Handler) movePage(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	pageNumber, err := pageNumberParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var payload movePageRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.MovePage(request.Context(), id, pageNumber, payload.Direction); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// pageNumberParam parses the {pageNumber} path segment.
func pageNumberParam(request *http.Request) (int, error) {
	pageNumber, err := strconv.Atoi(requestutil.Param(request, "pageNumber"))
	if err != nil {
		return 0, validate.RequiredError("page_number", "Page number must be an integer")
	}
	return pageNumber, nil
}
