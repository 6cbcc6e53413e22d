package entities

import (
	"context"

	"github.com/nlowen/catalog/pkg/pagination"
)

// System defines the public contract for entity domain operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(ctx context.Context, req ListRequest) (*pagination.PageResponse[Entity], error)
	Find(ctx context.Context, id int64) (*Entity, error)
	Create(ctx context.Context, cmd CreateCommand) (*Entity, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) error
	Delete(ctx context.Context, id int64) error
}
