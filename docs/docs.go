// Package docs registers the Swagger 2.0 document served at /swagger/index.html.
// It follows the layout swag init produces and is kept in step with the @Router
// annotations in internal/controller; internal/server checks every API route is listed.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "MyBeing"
        },
        "license": {
            "name": "MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/quizzes": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Quizzes"
                ],
                "summary": "List quizzes",
                "description": "Get every published quiz with its question count.",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.QuizSummaryDTO"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal server error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/quizzes/{slug}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Quizzes"
                ],
                "summary": "Get a quiz",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Quiz slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.QuizDTO"
                        }
                    },
                    "404": {
                        "description": "Quiz not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/quizzes/{slug}/submit": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Quizzes"
                ],
                "summary": "Submit quiz answers",
                "description": "Scores the answers, finds the matching result band and stores the run.",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Quiz slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Answers keyed by question id",
                        "name": "answers",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SubmitQuizRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SubmitQuizResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid answers",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Quiz not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too many submissions",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/quizzes/{slug}/runs/{run_id}/email": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Quizzes"
                ],
                "summary": "Email a quiz result",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Quiz slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Run id returned by submit",
                        "name": "run_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Email address",
                        "name": "email",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AttachEmailRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AttachEmailResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid email",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Run not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too many requests",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/newsletter/subscribe": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Newsletter"
                ],
                "summary": "Subscribe to the newsletter",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Email and optional source",
                        "name": "subscription",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.SubscribeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SubscribeResponse"
                        }
                    },
                    "400": {
                        "description": "Invalid email",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too many requests",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/newsletter/unsubscribe": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Newsletter"
                ],
                "summary": "Unsubscribe from the newsletter",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Unsubscribe token",
                        "name": "token",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.UnsubscribeRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MessageResponse"
                        }
                    },
                    "404": {
                        "description": "Unknown token",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/articles": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Articles"
                ],
                "summary": "List published articles",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.ArticleSummaryDTO"
                            }
                        }
                    }
                }
            }
        },
        "/articles/{slug}": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Articles"
                ],
                "summary": "Get a published article",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Article slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ArticleDTO"
                        }
                    },
                    "404": {
                        "description": "Article not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/login": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Auth"
                ],
                "summary": "(Admin) Log in as the site owner",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Owner credentials",
                        "name": "credentials",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.LoginResponse"
                        }
                    },
                    "401": {
                        "description": "Invalid credentials",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "429": {
                        "description": "Too many attempts",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "Admin access not configured",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/logout": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Auth"
                ],
                "summary": "(Admin) Log out",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.MessageResponse"
                        }
                    }
                }
            }
        },
        "/admin/me": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Auth"
                ],
                "summary": "(Admin) Current session",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SessionResponse"
                        }
                    },
                    "401": {
                        "description": "Not logged in",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/quizzes": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Quizzes"
                ],
                "summary": "(Admin) List quizzes with questions and bands",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.QuizDTO"
                            }
                        }
                    },
                    "401": {
                        "description": "Not logged in",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Quizzes"
                ],
                "summary": "(Admin) Create a quiz",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Quiz definition",
                        "name": "quiz",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.QuizUpsertRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.QuizDTO"
                        }
                    },
                    "400": {
                        "description": "Invalid quiz or bands",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Slug already used",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/quizzes/{slug}": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Quizzes"
                ],
                "summary": "(Admin) Replace a quiz",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Quiz slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Quiz definition",
                        "name": "quiz",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.QuizUpsertRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.QuizDTO"
                        }
                    },
                    "400": {
                        "description": "Invalid quiz or bands",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Quiz not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Quizzes"
                ],
                "summary": "(Admin) Delete a quiz",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Quiz slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Quiz not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/quizzes/{slug}/band-check": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Quizzes"
                ],
                "summary": "(Admin) Check a stored quiz's band coverage",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Quiz slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.BandCheckResponse"
                        }
                    },
                    "404": {
                        "description": "Quiz not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/articles": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Articles"
                ],
                "summary": "(Admin) List all articles, drafts included",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/dto.AdminArticleDTO"
                            }
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Articles"
                ],
                "summary": "(Admin) Create an article",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "description": "Article",
                        "name": "article",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ArticleUpsertRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/dto.AdminArticleDTO"
                        }
                    },
                    "409": {
                        "description": "Slug already used",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/articles/{slug}": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Articles"
                ],
                "summary": "(Admin) Update an article",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Article slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Article",
                        "name": "article",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ArticleUpsertRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AdminArticleDTO"
                        }
                    },
                    "404": {
                        "description": "Article not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Articles"
                ],
                "summary": "(Admin) Delete an article",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Article slug",
                        "name": "slug",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Article not found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/admin/analytics": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Admin - Analytics"
                ],
                "summary": "(Admin) Quiz and newsletter analytics",
                "security": [
                    {
                        "AdminToken": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AnalyticsResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "error": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "reset_at": {
                    "type": "string"
                }
            }
        },
        "dto.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.QuestionDTO": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                },
                "options": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "dto.BandDTO": {
            "type": "object",
            "properties": {
                "min": {
                    "type": "integer"
                },
                "max": {
                    "type": "integer"
                },
                "label": {
                    "type": "string"
                },
                "advice": {
                    "type": "string"
                }
            }
        },
        "dto.BandResultDTO": {
            "type": "object",
            "properties": {
                "label": {
                    "type": "string"
                },
                "advice": {
                    "type": "string"
                }
            }
        },
        "dto.QuizSummaryDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "question_count": {
                    "type": "integer"
                }
            }
        },
        "dto.QuizDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "questions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.QuestionDTO"
                    }
                },
                "bands": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.BandDTO"
                    }
                },
                "min_score": {
                    "type": "integer"
                },
                "max_score": {
                    "type": "integer"
                }
            }
        },
        "dto.SubmitQuizRequest": {
            "type": "object",
            "properties": {
                "answers": {
                    "type": "object",
                    "additionalProperties": true
                }
            },
            "required": [
                "answers"
            ]
        },
        "dto.SubmitQuizResponse": {
            "type": "object",
            "properties": {
                "run_id": {
                    "type": "string"
                },
                "quiz_slug": {
                    "type": "string"
                },
                "score": {
                    "type": "integer"
                },
                "min_score": {
                    "type": "integer"
                },
                "max_score": {
                    "type": "integer"
                },
                "band": {
                    "$ref": "#/definitions/dto.BandResultDTO"
                }
            }
        },
        "dto.AttachEmailRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 254
                }
            },
            "required": [
                "email"
            ]
        },
        "dto.AttachEmailResponse": {
            "type": "object",
            "properties": {
                "run_id": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "dto.SubscribeRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 254
                },
                "source": {
                    "type": "string",
                    "maxLength": 64
                }
            },
            "required": [
                "email"
            ]
        },
        "dto.SubscribeResponse": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "subscribed": {
                    "type": "boolean"
                },
                "already_subscribed": {
                    "type": "boolean"
                }
            }
        },
        "dto.UnsubscribeRequest": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                }
            },
            "required": [
                "token"
            ]
        },
        "dto.ArticleSummaryDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "excerpt": {
                    "type": "string"
                },
                "published_at": {
                    "type": "string"
                }
            }
        },
        "dto.ArticleDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "excerpt": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "published_at": {
                    "type": "string"
                }
            }
        },
        "dto.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                },
                "secret_key": {
                    "type": "string"
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "dto.SessionResponse": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string"
                },
                "role": {
                    "type": "string"
                },
                "permissions": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "expires_at": {
                    "type": "string"
                }
            }
        },
        "dto.LoginResponse": {
            "type": "object",
            "properties": {
                "session": {
                    "$ref": "#/definitions/dto.SessionResponse"
                },
                "token": {
                    "type": "string"
                }
            }
        },
        "dto.QuestionInput": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "string"
                },
                "text": {
                    "type": "string"
                },
                "type": {
                    "type": "string",
                    "enum": [
                        "likert",
                        "yes_no",
                        "multiple_choice",
                        "text_input"
                    ]
                },
                "options": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            },
            "required": [
                "id",
                "text",
                "type"
            ]
        },
        "dto.BandInput": {
            "type": "object",
            "properties": {
                "min": {
                    "type": "integer"
                },
                "max": {
                    "type": "integer"
                },
                "label": {
                    "type": "string"
                },
                "advice": {
                    "type": "string"
                }
            },
            "required": [
                "label"
            ]
        },
        "dto.QuizUpsertRequest": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "questions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.QuestionInput"
                    }
                },
                "bands": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.BandInput"
                    }
                }
            },
            "required": [
                "slug",
                "title",
                "questions",
                "bands"
            ]
        },
        "dto.BandCheckResponse": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "min_score": {
                    "type": "integer"
                },
                "max_score": {
                    "type": "integer"
                },
                "valid": {
                    "type": "boolean"
                },
                "issues": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/scoring.BandIssue"
                    }
                }
            }
        },
        "dto.ArticleUpsertRequest": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "excerpt": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "published": {
                    "type": "boolean"
                }
            },
            "required": [
                "slug",
                "title",
                "body"
            ]
        },
        "dto.AdminArticleDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "excerpt": {
                    "type": "string"
                },
                "body": {
                    "type": "string"
                },
                "published": {
                    "type": "boolean"
                },
                "published_at": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "dto.QuizStatsDTO": {
            "type": "object",
            "properties": {
                "slug": {
                    "type": "string"
                },
                "runs": {
                    "type": "integer"
                },
                "average_score": {
                    "type": "number"
                },
                "emails": {
                    "type": "integer"
                },
                "bands": {
                    "type": "object",
                    "additionalProperties": {
                        "type": "integer"
                    }
                }
            }
        },
        "dto.SubscriberStatsDTO": {
            "type": "object",
            "properties": {
                "active": {
                    "type": "integer"
                },
                "unsubscribed": {
                    "type": "integer"
                }
            }
        },
        "dto.AnalyticsResponse": {
            "type": "object",
            "properties": {
                "quizzes": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.QuizStatsDTO"
                    }
                },
                "subscribers": {
                    "$ref": "#/definitions/dto.SubscriberStatsDTO"
                }
            }
        },
        "scoring.BandIssue": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string"
                },
                "from": {
                    "type": "integer"
                },
                "to": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                }
            }
        }
    },
    "securityDefinitions": {
        "AdminToken": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "MyBeing API",
	Description:      "Quizzes with scored result bands, newsletter capture, articles and an owner-only admin.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
