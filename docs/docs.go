// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/health": {
            "get": {"tags": ["Health"], "summary": "Database connectivity and schema check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "503": {"description": "Service Unavailable"}}}
        },
        "/api/boards": {
            "get": {"tags": ["Boards"], "summary": "List boards, newest first", "produces": ["application/json"], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.BoardResponse"}}}}},
            "post": {"tags": ["Boards"], "summary": "Create a board", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"name": "board", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateBoardRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.BoardResponse"}}}}
        },
        "/api/boards/{id}": {
            "get": {"tags": ["Boards"], "summary": "Get a board", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BoardResponse"}}}},
            "put": {"tags": ["Boards"], "summary": "Update a board", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "board", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateBoardRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.BoardResponse"}}}},
            "delete": {"tags": ["Boards"], "summary": "Delete a board with its lists and cards", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/boards/{id}/lists": {
            "get": {"tags": ["Lists"], "summary": "Lists of a board in position order", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.ListResponse"}}}}}
        },
        "/api/boards/{id}/lists/reorder": {
            "post": {"tags": ["Lists"], "summary": "Set the order of every list on a board", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ReorderListsRequest"}}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/lists": {
            "get": {"tags": ["Lists"], "summary": "Lists of a board in position order", "produces": ["application/json"], "parameters": [{"type": "string", "name": "board_id", "in": "query", "required": true}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.ListResponse"}}}}},
            "post": {"tags": ["Lists"], "summary": "Append a list to a board", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"name": "list", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateListRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.ListResponse"}}}}
        },
        "/api/lists/{id}": {
            "get": {"tags": ["Lists"], "summary": "Get a list", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListResponse"}}}},
            "put": {"tags": ["Lists"], "summary": "Update a list", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "list", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateListRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.ListResponse"}}}},
            "delete": {"tags": ["Lists"], "summary": "Delete a list with its cards", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/lists/{id}/cards": {
            "get": {"tags": ["Cards"], "summary": "Cards of a list in position order", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/handler.CardResponse"}}}}}
        },
        "/api/lists/{id}/cards/reorder": {
            "post": {"tags": ["Cards"], "summary": "Set the order of every card in a list", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ReorderCardsRequest"}}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/cards": {
            "post": {"tags": ["Cards"], "summary": "Append a card to a list", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"name": "card", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.CreateCardRequest"}}], "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.CardResponse"}}}}
        },
        "/api/cards/{id}": {
            "get": {"tags": ["Cards"], "summary": "Get a card", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CardResponse"}}}},
            "put": {"tags": ["Cards"], "summary": "Update a card", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "card", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.UpdateCardRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CardResponse"}}}},
            "delete": {"tags": ["Cards"], "summary": "Delete a card", "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}
        },
        "/api/cards/{id}/move": {
            "post": {"tags": ["Cards"], "summary": "Move a card to a list and position", "description": "Other cards keep their positions; reorder the lists to renumber them.", "consumes": ["application/json"], "produces": ["application/json"], "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}, {"name": "move", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.MoveCardRequest"}}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.CardResponse"}}}}
        }
    },
    "definitions": {
        "handler.BoardResponse": {"type": "object", "properties": {"id": {"type": "string"}, "title": {"type": "string"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "handler.CreateBoardRequest": {"type": "object", "required": ["title"], "properties": {"title": {"type": "string"}}},
        "handler.UpdateBoardRequest": {"type": "object", "properties": {"title": {"type": "string"}}},
        "handler.ListResponse": {"type": "object", "properties": {"id": {"type": "string"}, "board_id": {"type": "string"}, "title": {"type": "string"}, "position": {"type": "integer"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "handler.CreateListRequest": {"type": "object", "required": ["board_id", "title"], "properties": {"board_id": {"type": "string"}, "title": {"type": "string"}}},
        "handler.UpdateListRequest": {"type": "object", "properties": {"title": {"type": "string"}, "position": {"type": "integer"}}},
        "handler.ReorderListsRequest": {"type": "object", "required": ["list_ids"], "properties": {"list_ids": {"type": "array", "items": {"type": "string"}}}},
        "handler.CardResponse": {"type": "object", "properties": {"id": {"type": "string"}, "list_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "due_date": {"type": "string"}, "position": {"type": "integer"}, "created_at": {"type": "string"}, "updated_at": {"type": "string"}}},
        "handler.CreateCardRequest": {"type": "object", "required": ["list_id", "title"], "properties": {"list_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"}, "due_date": {"type": "string"}}},
        "handler.UpdateCardRequest": {"type": "object", "properties": {"title": {"type": "string"}, "description": {"type": "string"}, "due_date": {"type": "string"}, "position": {"type": "integer"}}},
        "handler.MoveCardRequest": {"type": "object", "required": ["list_id", "position"], "properties": {"list_id": {"type": "string"}, "position": {"type": "integer"}}},
        "handler.ReorderCardsRequest": {"type": "object", "required": ["card_ids"], "properties": {"card_ids": {"type": "array", "items": {"type": "string"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Kanban Board API",
	Description:      "Boards hold ordered lists, lists hold ordered cards.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
