package openapi

import "maps"

// NewComponents creates Components with the shared error schema and responses.
func NewComponents() *Components {
	errorContent := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("ErrorResponse")},
	}

	return &Components{
		Schemas: map[string]*Schema{
			"ErrorResponse": {
				Type: "object",
				Properties: map[string]*Schema{
					"timestamp": {Type: "string", Format: "date-time", Description: "Time the error occurred"},
					"status":    {Type: "integer", Description: "HTTP status code"},
					"error":     {Type: "string", Description: "Status reason phrase"},
					"message":   {Type: "string", Description: "Human-readable error message"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest": {
				Description: "Invalid request",
				Content:     errorContent,
			},
			"NotFound": {
				Description: "Resource not found",
				Content:     errorContent,
			},
			"Unauthorized": {
				Description: "Missing or invalid credentials",
				Content:     errorContent,
			},
			"Forbidden": {
				Description: "Authenticated principal lacks the required role",
				Content:     errorContent,
			},
		},
	}
}

// AddSchemas merges the given schemas into the component schemas.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

// AddResponses merges the given responses into the component responses.
func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
