// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package comic provides the HTTP interface for discovery and management of the catalogue.

It exposes endpoints for the home feed, the discover page, comic browsing,
chapter lists, and metadata management by authorised personnel.

# Routing Strategy

  - Public (v1): Feed and discovery endpoints accessible to all visitors.
  - Restricted (v1): Mutative endpoints requiring the Admin role (POST, PATCH, PUT, DELETE).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package comic

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

// Handler implements the HTTP layer for comic discovery and management.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comic [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comic domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listComics)
	router.Get("/home", handler.homeFeed)
	router.Get("/discover", handler.discover)
	router.Get("/{identifier}", handler.getComic)
	router.Get("/{identifier}/complete", handler.getComicComplete)
	router.Get("/{id}/chapters", handler.listChapters)

	// ## Content Management (Admin Protected)
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Post("/", handler.createComic)
		admin.Patch("/{id}", handler.updateComic)
		admin.Delete("/{id}", handler.deleteComic)
		admin.Put("/{id}/metadata", handler.replaceMetadata)
	})

	return router
}

// # Discovery Endpoints

/*
GET /api/v1/comics.

Description: Retrieves a paginated list of comics from the catalogue.
Country values outside the origin whitelist are ignored; unknown sort keys
fall back to the default rank ordering.

Request:
  - search: string (Title substring search; "q" accepted as an alias)
  - genre: string (Genre UUID)
  - format: string (Format UUID)
  - country: string (KR, JPN, CN)
  - sort: string (title, created_date, view_count, vote_count, bookmark_count, rank)
  - order: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []Comic: Paginated list of comics
*/
func (handler *Handler) listComics(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := filterFromQuery(request)

	comics, total, err := handler.service.ListComics(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comics, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comics/home.

Description: The landing page feed. Each comic carries its genres, chapter
count, and up to two latest chapters. Without an explicit sort the page is
ordered by reading activity (freshest chapter first, chapterless comics
last by creation date).

Request:
  - Same query surface as GET /comics

Response:
  - 200: []Comic: Decorated, ordered feed page
*/
func (handler *Handler) homeFeed(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := filterFromQuery(request)

	comics, total, err := handler.service.HomeFeed(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comics, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comics/discover.

Description: Discover page payload: a most-viewed rail, a best-ranked rail,
and the filtered search results.

Response:
  - 200: DiscoverResult with pagination metadata for the search results
*/
func (handler *Handler) discover(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	filter := filterFromQuery(request)

	result, total, err := handler.service.Discover(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, result, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/comics/{identifier}.

Description: Retrieves detailed metadata for a comic using either its UUID
or unique title slug. A view event is dispatched asynchronously.

Response:
  - 200: Comic: Success
  - 404: ErrNotFound: Comic not found
*/
func (handler *Handler) getComic(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	comic, err := handler.service.GetComic(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comic)
}

// comicCompleteResponse bundles the comic with the reader's state.
type comicCompleteResponse struct {
	*Comic
	UserState *UserState `json:"user_state,omitempty"`
}

/*
GET /api/v1/comics/{identifier}/complete.

Description: Comic detail plus per-user state (bookmark flag, vote flag,
last read chapter) for authenticated readers. Anonymous requests receive
the comic without user state.

Response:
  - 200: Comic with user_state
  - 404: ErrNotFound
*/
func (handler *Handler) getComicComplete(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")
	userID := requestutil.UserID(request)

	comic, state, err := handler.service.GetComicComplete(request.Context(), identifier, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comicCompleteResponse{Comic: comic, UserState: state})
}

/*
GET /api/v1/comics/{id}/chapters.

Description: One page of a comic's chapters.

Request:
  - sort: string (chapter_number (default), release_date)
  - order: string (asc, desc)
  - limit, page: int

Response:
  - 200: []ChapterSummary
  - 404: ErrNotFound: Comic not found
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	comicID := requestutil.ID(request, "id")
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	chapters, total, err := handler.service.ListChapters(request.Context(), comicID,
		queryParams.Get("sort"), queryParams.Get("order"),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Request Payloads

// createComicRequest defines the inbound JSON schema for comic creation.
type createComicRequest struct {
	Title       string   `json:"title"`
	TitleAlt    string   `json:"title_alt"`
	Description string   `json:"description"`
	CoverURL    string   `json:"cover_url"`
	Country     Country  `json:"country"`
	Status      Status   `json:"status"`
	Year        *int     `json:"year"`
	GenreIDs    []string `json:"genre_ids"`
	AuthorIDs   []string `json:"author_ids"`
	ArtistIDs   []string `json:"artist_ids"`
	FormatIDs   []string `json:"format_ids"`
}

// # Mutation Endpoints

/*
POST /api/v1/comics. (Admin)

Description: Creates a new publication with optional initial metadata sets.

Response:
  - 201: Comic: The created entity
  - 400: Validation failure
  - 409: Slug conflict
*/
func (handler *Handler) createComic(writer http.ResponseWriter, request *http.Request) {
	var payload createComicRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic := &Comic{
		Title:          payload.Title,
		TitleAlt:       payload.TitleAlt,
		Description:    payload.Description,
		CoverURL:       payload.CoverURL,
		Country:        payload.Country,
		Status:         payload.Status,
		Year:           payload.Year,
		GenreIDs:       payload.GenreIDs,
		AuthorIDs:      payload.AuthorIDs,
		ArtistIDs:      payload.ArtistIDs,
		FormatIDs:      payload.FormatIDs,
		LatestChapters: []ChapterSummary{},
	}

	if err := handler.service.CreateComic(request.Context(), comic); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comic)
}

/*
PATCH /api/v1/comics/{id}. (Admin)

Description: Partial update of a comic's scalar fields.

Response:
  - 200: Updated comic
  - 404: ErrNotFound
*/
func (handler *Handler) updateComic(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var payload createComicRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comic := &Comic{
		ID:          id,
		Title:       payload.Title,
		TitleAlt:    payload.TitleAlt,
		Description: payload.Description,
		CoverURL:    payload.CoverURL,
		Country:     payload.Country,
		Status:      payload.Status,
		Year:        payload.Year,
	}

	if err := handler.service.UpdateComic(request.Context(), comic); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.GetComic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/comics/{id}. (Admin)

Response:
  - 204: Deleted
  - 404: ErrNotFound
*/
func (handler *Handler) deleteComic(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteComic(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
PUT /api/v1/comics/{id}/metadata. (Admin)

Description: Replaces all four metadata junction sets atomically. The
submitted sets become the comic's complete metadata; omitted IDs are
removed.

Response:
  - 200: Updated comic with flattened metadata
  - 400: Unknown reference ID
  - 404: ErrNotFound
*/
func (handler *Handler) replaceMetadata(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var payload Metadata
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ReplaceMetadata(request.Context(), id, payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.GetComic(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// # Query Helpers

// filterFromQuery maps the shared discovery query surface onto a [Filter].
// "search" is the documented parameter; "q" survives as a shorthand alias.
func filterFromQuery(request *http.Request) Filter {
	queryParams := request.URL.Query()

	search := queryParams.Get("search")
	if search == "" {
		search = queryParams.Get("q")
	}

	return Filter{
		Search:  search,
		Genre:   queryParams.Get("genre"),
		Format:  queryParams.Get("format"),
		Country: queryParams.Get("country"),
		Sort:    queryParams.Get("sort"),
		Order:   queryParams.Get("order"),
	}
}
