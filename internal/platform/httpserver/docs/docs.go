// Package docs serves the OpenAPI document for the clip feed API at /swagger/doc.json.
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
        "/v1/feed": {
            "get": {
                "summary": "Ranked page of approved clips",
                "produces": ["application/json"],
                "parameters": [
                    {"type": "string", "description": "Game name or all", "name": "game", "in": "query"},
                    {"type": "string", "enum": ["newest", "most-liked", "most-viewed", "hot"], "name": "sort", "in": "query"},
                    {"type": "integer", "description": "Zero-based page index", "name": "page", "in": "query"},
                    {"type": "integer", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Viewer id for like flags", "name": "X-User-Id", "in": "header"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/FeedResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/clips": {
            "post": {
                "summary": "Submit a clip for review",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"description": "Clip submission", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SubmitClipRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ClipResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/clips/{clip_id}": {
            "get": {
                "summary": "Get an approved clip",
                "parameters": [{"type": "string", "name": "clip_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClipResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            }
        },
        "/v1/clips/{clip_id}/like": {
            "post": {
                "summary": "Like a clip",
                "parameters": [
                    {"type": "string", "name": "clip_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LikeResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ErrorResponse"}}
                }
            },
            "delete": {
                "summary": "Remove a like",
                "parameters": [
                    {"type": "string", "name": "clip_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LikeResponse"}}
                }
            }
        },
        "/v1/clips/{clip_id}/views": {
            "post": {
                "summary": "Count a player render",
                "parameters": [{"type": "string", "name": "clip_id", "in": "path", "required": true}],
                "responses": {"202": {"description": "Accepted"}}
            }
        },
        "/v1/clips/{clip_id}/comments": {
            "get": {
                "summary": "List comments, newest first",
                "parameters": [{"type": "string", "name": "clip_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CommentListResponse"}}}
            },
            "post": {
                "summary": "Add a comment",
                "parameters": [
                    {"type": "string", "name": "clip_id", "in": "path", "required": true},
                    {"type": "string", "name": "X-User-Id", "in": "header", "required": true},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddCommentRequest"}}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/CommentResponse"}}}
            }
        },
        "/v1/moderation/clips": {
            "get": {
                "summary": "Moderation queue",
                "parameters": [{"type": "string", "enum": ["pending", "approved", "rejected"], "name": "status", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ClipListResponse"}}}
            }
        },
        "/v1/moderation/clips/{clip_id}/approve": {
            "post": {
                "summary": "Approve a pending clip",
                "parameters": [{"type": "string", "name": "clip_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ClipResponse"}}}
            }
        },
        "/v1/moderation/clips/{clip_id}/reject": {
            "post": {
                "summary": "Reject a pending clip",
                "parameters": [
                    {"type": "string", "name": "clip_id", "in": "path", "required": true},
                    {"name": "request", "in": "body", "schema": {"$ref": "#/definitions/ReviewClipRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ClipResponse"}}}
            }
        },
        "/v1/moderation/clips/{clip_id}": {
            "delete": {
                "summary": "Delete a clip with its likes and comments",
                "parameters": [{"type": "string", "name": "clip_id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}}
        },
        "ClipResponse": {
            "type": "object",
            "properties": {
                "clip_id": {"type": "string"},
                "clip_url": {"type": "string"},
                "embed_url": {"type": "string"},
                "title": {"type": "string"},
                "game": {"type": "string"},
                "description": {"type": "string"},
                "streamer": {"type": "string"},
                "submitted_by": {"type": "string"},
                "status": {"type": "string"},
                "submitted_at": {"type": "string"},
                "reviewed_by": {"type": "string"},
                "reviewed_at": {"type": "string"},
                "rejection_reason": {"type": "string"},
                "likes": {"type": "integer"},
                "views": {"type": "integer"},
                "comments": {"type": "integer"},
                "hot_score": {"type": "number"},
                "user_has_liked": {"type": "boolean"},
                "streamer_profile_image_url": {"type": "string"},
                "game_box_art_url": {"type": "string"}
            }
        },
        "FeedResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/ClipResponse"}},
                "game": {"type": "string"},
                "sort": {"type": "string"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "has_more": {"type": "boolean"}
            }
        },
        "ClipListResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/ClipResponse"}}}
        },
        "SubmitClipRequest": {
            "type": "object",
            "properties": {
                "clip_url": {"type": "string"},
                "title": {"type": "string"},
                "game": {"type": "string"},
                "description": {"type": "string"},
                "streamer": {"type": "string"},
                "submitted_by": {"type": "string"},
                "streamer_profile_image_url": {"type": "string"},
                "game_box_art_url": {"type": "string"}
            }
        },
        "LikeResponse": {
            "type": "object",
            "properties": {
                "clip_id": {"type": "string"},
                "liked": {"type": "boolean"},
                "changed": {"type": "boolean"},
                "likes": {"type": "integer"}
            }
        },
        "ReviewClipRequest": {
            "type": "object",
            "properties": {"reason": {"type": "string"}}
        },
        "AddCommentRequest": {
            "type": "object",
            "properties": {"content": {"type": "string"}, "user_display_name": {"type": "string"}}
        },
        "CommentResponse": {
            "type": "object",
            "properties": {
                "comment_id": {"type": "string"},
                "clip_id": {"type": "string"},
                "user_id": {"type": "string"},
                "user_display_name": {"type": "string"},
                "content": {"type": "string"},
                "created_at": {"type": "string"}
            }
        },
        "CommentListResponse": {
            "type": "object",
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/CommentResponse"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ripclips API",
	Description:      "Community clip feed: ranking, likes, views, comments and moderation.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
