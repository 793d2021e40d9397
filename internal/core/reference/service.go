// Copyright (c) 2026 Hikari. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"
	"log/slog"

	"github.com/taibuivan/hikari/internal/platform/validate"
	"github.com/taibuivan/hikari/pkg/uuid"
)

// # Service Layer

// Service orchestrates master data management.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new reference [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
List returns every entry of a kind, sorted by name.

Returns:
  - []*Entry: All entries
  - error: apperr.ValidationError for an unknown kind
*/
func (service *Service) List(context context.Context, kind Kind) ([]*Entry, error) {

	validator := &validate.Validator{}
	validator.Custom("kind", !kind.IsValid(), "Unknown reference kind")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repository.List(context, kind)
}

/*
Create validates and persists a new entry.

Returns:
  - *Entry: The created entry
  - error: apperr.ValidationError or apperr.Conflict on duplicates
*/
func (service *Service) Create(context context.Context, kind Kind, name string) (*Entry, error) {

	validator := &validate.Validator{}
	validator.Custom("kind", !kind.IsValid(), "Unknown reference kind").
		Required(FieldName, name).
		MaxLen(FieldName, name, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	entry := &Entry{
		ID:   uuid.New(),
		Name: name,
	}

	if err := service.repository.Create(context, kind, entry); err != nil {
		return nil, err
	}

	service.logger.Info("reference_created",
		slog.String("kind", string(kind)),
		slog.String("name", name))

	return entry, nil
}

/*
Delete removes an entry and detaches it from every comic.

Returns:
  - error: apperr.NotFound if missing
*/
func (service *Service) Delete(context context.Context, kind Kind, id string) error {

	validator := &validate.Validator{}
	validator.Custom("kind", !kind.IsValid(), "Unknown reference kind").
		UUID("id", id)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.Delete(context, kind, id); err != nil {
		return err
	}

	service.logger.Warn("reference_deleted",
		slog.String("kind", string(kind)),
		slog.String("id", id))

	return nil
}

// FieldName is the validated field identifier for entry names.
const FieldName = "name"
