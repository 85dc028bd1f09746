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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/bookings": {
            "get": {"tags": ["bookings"], "summary": "Search bookings visible to the caller", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["bookings"], "summary": "Book a time slot as the authenticated guest", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/bookings/upcoming": {"get": {"tags": ["bookings"], "summary": "Next pending or confirmed bookings of the caller", "responses": {"200": {"description": "OK"}}}},
        "/bookings/stats": {"get": {"tags": ["bookings"], "summary": "Booking counts and revenue within the caller's scope", "responses": {"200": {"description": "OK"}}}},
        "/bookings/check-availability": {"post": {"tags": ["bookings"], "summary": "Check whether a slot is free", "responses": {"200": {"description": "OK"}}}},
        "/bookings/calculate-price": {"post": {"tags": ["bookings"], "summary": "Quote the price of a slot", "responses": {"200": {"description": "OK"}}}},
        "/bookings/{id}": {"get": {"tags": ["bookings"], "summary": "Get a booking", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "404": {"description": "Not Found"}}}},
        "/bookings/{id}/status": {"patch": {"tags": ["bookings"], "summary": "Move a booking through its lifecycle", "responses": {"200": {"description": "OK"}}}},
        "/bookings/{id}/confirm": {"post": {"tags": ["bookings"], "summary": "Confirm a pending booking", "responses": {"200": {"description": "OK"}}}},
        "/bookings/{id}/cancel": {"post": {"tags": ["bookings"], "summary": "Cancel a booking", "responses": {"200": {"description": "OK"}}}},
        "/conversations": {
            "get": {"tags": ["conversations"], "summary": "Conversations of the caller, most recent activity first", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["conversations"], "summary": "Open or fetch the conversation of a booking", "responses": {"200": {"description": "OK"}}}
        },
        "/conversations/unread-count": {"get": {"tags": ["conversations"], "summary": "Total unread messages of the caller", "responses": {"200": {"description": "OK"}}}},
        "/conversations/{id}/messages": {
            "get": {"tags": ["conversations"], "summary": "Messages of a conversation, oldest first", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["conversations"], "summary": "Post a message to a conversation", "responses": {"201": {"description": "Created"}}}
        },
        "/conversations/{id}/read": {"post": {"tags": ["conversations"], "summary": "Mark the other party's messages as read", "responses": {"200": {"description": "OK"}}}},
        "/reviews": {"post": {"tags": ["reviews"], "summary": "Review a completed booking", "responses": {"201": {"description": "Created"}}}},
        "/reviews/{id}": {
            "patch": {"tags": ["reviews"], "summary": "Edit a review within 24 hours of posting it", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["reviews"], "summary": "Remove a review (admin)", "responses": {"204": {"description": "No Content"}}}
        },
        "/reviews/{id}/response": {"post": {"tags": ["reviews"], "summary": "Host's public answer to a review", "responses": {"200": {"description": "OK"}}}},
        "/properties": {
            "get": {"tags": ["properties"], "summary": "Browse and search active listings", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["properties"], "summary": "Create a listing (host or admin)", "responses": {"201": {"description": "Created"}}}
        },
        "/properties/{id}": {
            "get": {"tags": ["properties"], "summary": "Listing detail with its rating", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["properties"], "summary": "Patch a listing (owner or admin)", "responses": {"200": {"description": "OK"}}}
        },
        "/properties/{id}/images": {"post": {"tags": ["properties"], "summary": "Attach an image to a listing", "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/reviews": {"get": {"tags": ["reviews"], "summary": "Reviews of a property, newest first", "responses": {"200": {"description": "OK"}}}},
        "/properties/{id}/rating": {"get": {"tags": ["reviews"], "summary": "Aggregate rating of a property", "responses": {"200": {"description": "OK"}}}},
        "/chat/{widget}": {"post": {"tags": ["chat"], "summary": "Forward a chat widget message to its assistant", "responses": {"200": {"description": "OK"}, "502": {"description": "Bad Gateway"}}}},
        "/payments/sessions/{id}": {"get": {"tags": ["payments"], "summary": "Confirmation data of a hosted checkout session", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}, "404": {"description": "Not Found"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Script9 API",
	Description:      "Bookings, messaging, reviews and catalog of the Script9 platform.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
