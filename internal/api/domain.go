package api

import (
	"github.com/nlowen/catalog/internal/entities"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Entities entities.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	entitiesSystem := entities.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Entities: entitiesSystem,
	}
}
