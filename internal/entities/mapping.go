package entities

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/nlowen/catalog/pkg/pagination"
	"github.com/nlowen/catalog/pkg/query"
	"github.com/nlowen/catalog/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "entities", "e").
	Project("entity_id", "EntityID").
	Project("name", "Name").
	Project("description", "Description").
	Project("entity_type", "EntityType").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

// ListRequest combines pagination with the optional list filters and sort field.
type ListRequest struct {
	pagination.PageRequest
	Name       string `json:"name,omitempty"`
	SortBy     string `json:"sortBy,omitempty"`
	EntityType string `json:"entityType,omitempty"`
}

// ListRequestFromQuery extracts list parameters from URL query values.
// Unparseable page numbers fall back to the first page and the configured
// default page size.
func ListRequestFromQuery(values url.Values, cfg pagination.Config) ListRequest {
	pageNo, _ := strconv.Atoi(values.Get("pageNo"))
	pageSize, _ := strconv.Atoi(values.Get("pageSize"))

	req := ListRequest{
		PageRequest: pagination.PageRequest{
			PageNo:   pageNo,
			PageSize: pageSize,
		},
		Name:       values.Get("name"),
		SortBy:     values.Get("sortBy"),
		EntityType: values.Get("entityType"),
	}

	req.Normalize(cfg)
	return req
}

// SortField resolves the sortBy parameter through the closed two-way branch:
// updatedAt (case-insensitive) sorts ascending by updated-at, every other
// value falls back to ascending created-at. No other sort fields exist.
func (r ListRequest) SortField() query.SortField {
	if strings.EqualFold(r.SortBy, "updatedAt") {
		return query.SortField{Field: "UpdatedAt"}
	}
	return query.SortField{Field: "CreatedAt"}
}

// ApplyFilter adds at most one predicate to the query builder. EntityType
// takes precedence over Name; the two are never combined. An entity type
// outside the enumeration fails with ErrInvalidEntityType.
func (r ListRequest) ApplyFilter(b *query.Builder) error {
	if r.EntityType != "" {
		et, err := ParseEntityType(r.EntityType)
		if err != nil {
			return err
		}
		b.WhereEquals("EntityType", string(et))
		return nil
	}

	if r.Name != "" {
		b.WhereContains("Name", r.Name)
	}
	return nil
}

func scanEntity(s repository.Scanner) (Entity, error) {
	var e Entity
	err := s.Scan(
		&e.EntityID,
		&e.Name,
		&e.Description,
		&e.EntityType,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}
