package api

import (
	"github.com/nlowen/catalog/internal/config"
	"github.com/nlowen/catalog/pkg/openapi"
)

// NewSpec builds the OpenAPI document describing the entity endpoints.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.Docs.Title, cfg.Version)
	spec.SetDescription(cfg.API.Docs.Description)
	spec.AddServer("http://" + cfg.Server.Addr())

	spec.Components.AddSchemas(entitySchemas())

	base := cfg.API.BasePath
	spec.Paths[base+"/"] = &openapi.PathItem{
		Get:  listEntities(),
		Post: createEntity(),
	}
	spec.Paths[base+"/{id}"] = &openapi.PathItem{
		Get:    findEntity(),
		Put:    updateEntity(),
		Delete: deleteEntity(),
	}

	return spec
}

func entitySchemas() map[string]*openapi.Schema {
	command := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"name":        {Type: "string", MaxLength: intPtr(50)},
			"description": {Type: "string", MaxLength: intPtr(50)},
			"entityType": {
				Type: "string",
				Enum: []any{"USER", "PRODUCT", "ITEM"},
			},
		},
		Required: []string{"name", "description", "entityType"},
	}

	return map[string]*openapi.Schema{
		"Entity": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"entityId":    {Type: "integer", Format: "int64"},
				"name":        {Type: "string"},
				"description": {Type: "string"},
				"entityType": {
					Type: "string",
					Enum: []any{"USER", "PRODUCT", "ITEM"},
				},
				"createdAt": {Type: "string", Format: "date-time"},
				"updatedAt": {Type: "string", Format: "date-time"},
			},
		},
		"EntityCommand": command,
		"EntityPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data": {
					Type:  "array",
					Items: openapi.SchemaRef("Entity"),
				},
				"pageNumber": {Type: "integer"},
				"pageSize":   {Type: "integer"},
				"totalPages": {Type: "integer"},
			},
		},
	}
}

func listEntities() *openapi.Operation {
	return &openapi.Operation{
		Summary: "List entities with pagination, filtering, and sorting",
		Tags:    []string{"entities"},
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("pageNo", "integer", "Zero-based page number", false),
			openapi.QueryParam("pageSize", "integer", "Number of records per page", false),
			openapi.QueryParam("name", "string", "Case-insensitive name fragment filter", false),
			openapi.QueryParam("sortBy", "string", "Sort field: updatedAt, otherwise createdAt", false),
			openapi.QueryParam("entityType", "string", "Exact entity type filter; overrides name", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Page of entities", "EntityPage"),
			400: openapi.ResponseRef("BadRequest"),
		},
	}
}

func createEntity() *openapi.Operation {
	return &openapi.Operation{
		Summary:     "Create an entity",
		Tags:        []string{"entities"},
		RequestBody: openapi.RequestBodyJSON("EntityCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Stored entity", "Entity"),
			400: openapi.ResponseRef("BadRequest"),
			409: {Description: "Duplicate entity"},
		},
	}
}

func findEntity() *openapi.Operation {
	return &openapi.Operation{
		Summary: "Find an entity by id",
		Tags:    []string{"entities"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Entity identifier"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Matching entity", "Entity"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}

func updateEntity() *openapi.Operation {
	return &openapi.Operation{
		Summary: "Update an entity",
		Tags:    []string{"entities"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Entity identifier"),
		},
		RequestBody: openapi.RequestBodyJSON("EntityCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseText("Update confirmation"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}

func deleteEntity() *openapi.Operation {
	return &openapi.Operation{
		Summary: "Delete an entity",
		Tags:    []string{"entities"},
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Entity identifier"),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseText("Delete confirmation"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
		},
	}
}

func intPtr(v int) *int {
	return &v
}
