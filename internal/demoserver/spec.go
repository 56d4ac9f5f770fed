// Copyright (c) OpenAPI2Callables Authors.
// Licensed under the MIT License.

package demoserver

import "github.com/andrewbolster/openapi2callables/openapi"

func strSchema(description string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Description: description}
}

// Spec returns the OpenAPI document describing the demo API.
func Spec() *openapi.Document {
	stringResponse := map[string]*openapi.ResponseObject{
		"200": {
			Description: "Successful Response",
			Content: map[string]openapi.MediaTypeObject{
				"application/json": {Schema: &openapi.Schema{Type: "string"}},
			},
		},
	}

	return &openapi.Document{
		OpenAPI: "3.1.0",
		Info: openapi.Info{
			Title:       "OpenAPI2Callables Test Server",
			Description: "A test server with various endpoint types to test parsing capabilities",
			Version:     "0.1.0",
		},
		Components: &openapi.Components{
			Schemas: map[string]*openapi.Schema{
				"Pirate": {
					Type:     "object",
					Required: []string{"name"},
					Properties: map[string]*openapi.Schema{
						"name": strSchema("The pirate's name"),
						"age": {
							AnyOf: []*openapi.Schema{
								{Type: "integer"},
								{Type: "null"},
							},
							Description: "The pirate's age",
						},
						"ship":   strSchema("The pirate's ship"),
						"rank":   {Type: "string", Enum: []any{"captain", "first_mate", "quartermaster", "sailor"}},
						"skills": {Type: "array", Items: &openapi.Schema{Type: "string"}},
					},
				},
				"Ship": {
					Type:     "object",
					Required: []string{"name", "type", "capacity"},
					Properties: map[string]*openapi.Schema{
						"id":       strSchema("Server-assigned ship ID"),
						"name":     strSchema("The ship's name"),
						"type":     strSchema("Type of ship (e.g., Galleon, Frigate, Sloop)"),
						"capacity": {Type: "integer", Description: "Number of crew members the ship can hold", Minimum: float64Ptr(1)},
						"cannons":  {Type: "integer", Description: "Number of cannons on the ship"},
					},
				},
			},
			SecuritySchemes: map[string]*openapi.SecurityScheme{
				"ApiKeyAuth": {Type: "apiKey", In: "header", Name: "X-API-Key"},
			},
		},
		Paths: map[string]openapi.PathItem{
			"/get_pirate": {
				Get: &openapi.OperationObject{
					OperationID: "pirate_get",
					Summary:     "Pirate Endpoint",
					Description: "Simplest possible endpoint; no inputs, only string response",
					Responses:   stringResponse,
				},
			},
			"/urlparam_pirate/{name}": {
				Get: &openapi.OperationObject{
					OperationID: "pirate_greet",
					Summary:     "Greet a pirate by name",
					Parameters: []*openapi.ParameterObject{
						{Name: "name", In: "path", Required: true, Schema: &openapi.Schema{Type: "string"}},
					},
					Responses: stringResponse,
				},
			},
			"/post_pirate": {
				Post: &openapi.OperationObject{
					OperationID: "pirate_post",
					Summary:     "Welcome a pirate from a posted record",
					RequestBody: &openapi.RequestBodyObject{
						Required: true,
						Content: map[string]openapi.MediaTypeObject{
							"application/json": {Schema: &openapi.Schema{Ref: "#/components/schemas/Pirate"}},
						},
					},
					Responses: stringResponse,
				},
			},
			"/search_pirates": {
				Get: &openapi.OperationObject{
					OperationID: "pirate_search",
					Summary:     "Search pirates by ship",
					Parameters: []*openapi.ParameterObject{
						{Name: "ship", In: "query", Required: true, Schema: &openapi.Schema{Type: "string"}},
					},
					Responses: map[string]*openapi.ResponseObject{
						"200": {
							Description: "Successful Response",
							Content: map[string]openapi.MediaTypeObject{
								"application/json": {
									Schema: &openapi.Schema{Type: "array", Items: &openapi.Schema{Ref: "#/components/schemas/Pirate"}},
								},
							},
						},
					},
				},
			},
			"/ships": {
				Post: &openapi.OperationObject{
					OperationID: "ship_create",
					Summary:     "Create a new ship",
					Description: "Requires the X-API-Key header.",
					Security:    []openapi.SecurityRequirement{{"ApiKeyAuth": {}}},
					Parameters: []*openapi.ParameterObject{
						{Name: "X-API-Key", In: "header", Description: "API key for authentication", Schema: &openapi.Schema{Type: "string"}},
					},
					RequestBody: &openapi.RequestBodyObject{
						Required: true,
						Content: map[string]openapi.MediaTypeObject{
							"application/json": {Schema: &openapi.Schema{Ref: "#/components/schemas/Ship"}},
						},
					},
					Responses: map[string]*openapi.ResponseObject{
						"201": {
							Description: "Ship created",
							Content: map[string]openapi.MediaTypeObject{
								"application/json": {Schema: &openapi.Schema{Ref: "#/components/schemas/Ship"}},
							},
						},
						"401": {Description: "Invalid API key"},
					},
				},
			},
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }
