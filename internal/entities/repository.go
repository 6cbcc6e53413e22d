package entities

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/nlowen/catalog/pkg/pagination"
	"github.com/nlowen/catalog/pkg/query"
	"github.com/nlowen/catalog/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an entity repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "entities"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

// List returns one page of matching entities plus pagination metadata.
// Exactly one filter predicate applies per call: entityType wins over name,
// and an entity type outside the enumeration fails before any store access.
func (r *repo) List(ctx context.Context, req ListRequest) (*pagination.PageResponse[Entity], error) {
	req.Normalize(r.pagination)

	qb := query.NewBuilder(projection, req.SortField())
	if err := req.ApplyFilter(qb); err != nil {
		return nil, err
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count entities: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(req.PageNo, req.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntity)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}

	result := pagination.NewPageResponse(items, total, req.PageNo, req.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Entity, error) {
	q, args := query.NewBuilder(projection).BuildSingle("EntityID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

// Create validates the command and persists a new entity with a
// server-assigned id and timestamps. Validation failures never reach the store.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Entity, error) {
	et, err := cmd.Validate()
	if err != nil {
		return nil, err
	}

	insertQ := `
		INSERT INTO entities (name, description, entity_type)
		VALUES ($1, $2, $3)
		RETURNING entity_id, name, description, entity_type, created_at, updated_at`

	e, err := repository.QueryOne(ctx, r.db, insertQ, []any{cmd.Name, cmd.Description, string(et)}, scanEntity)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("entity added",
		"id", e.EntityID,
		"entity_type", e.EntityType,
	)
	return &e, nil
}

// Update overwrites name, description, and entity type of the identified row
// and refreshes updated_at. A nonexistent id fails with ErrNotFound.
func (r *repo) Update(ctx context.Context, id int64, cmd UpdateCommand) error {
	et, err := cmd.Validate()
	if err != nil {
		return err
	}

	updateQ := `
		UPDATE entities
		SET name = $1, description = $2, entity_type = $3, updated_at = CURRENT_DATE
		WHERE entity_id = $4`

	if err := repository.ExecExpectOne(ctx, r.db, updateQ, cmd.Name, cmd.Description, string(et), id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("entity updated", "id", id)
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM entities WHERE entity_id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("entity deleted", "id", id)
	return nil
}
