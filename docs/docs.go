// Package docs holds the OpenAPI description served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "API Support",
            "email": "support@hotel.local"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Rotate refresh token",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Logout",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current account",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/rooms": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Rooms"],
                "summary": "List rooms",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Rooms"],
                "summary": "Add rooms",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Rooms"],
                "summary": "Remove rooms",
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}
            }
        },
        "/rooms/{id}/checkout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Rooms"],
                "summary": "Check out the active reservation of a room",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/reservations": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Reservations"],
                "summary": "List active reservations",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["Reservations"],
                "summary": "Create reservation",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}
            }
        },
        "/guests": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Guests"],
                "summary": "List guests",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/guests/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Guests"],
                "summary": "Guest stay statistics",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/dashboard/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["Dashboard"],
                "summary": "Dashboard statistics",
                "parameters": [{"type": "string", "enum": ["today", "7days", "30days"], "name": "filter", "in": "query"}],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Hotel Desk API",
	Description:      "Front desk API for rooms, guests, reservations and staff accounts.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
