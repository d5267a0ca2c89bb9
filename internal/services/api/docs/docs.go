// Package docs holds the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "paths": {
        "/analyze": {
            "post": {
                "tags": ["analyze"],
                "summary": "Admit, score, store and rank an answer",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.AnalyzeRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.AnalyzeResponse"}}}},
                    "422": {"description": "Rejected by admission", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}},
                    "503": {"description": "Inference unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/validate": {
            "post": {
                "tags": ["analyze"],
                "summary": "Run admission without side effects",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.TextRequest"}}}},
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/admission.Result"}}}}}
            }
        },
        "/perplexity": {
            "post": {
                "tags": ["analyze"],
                "summary": "Raw inference passthrough",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.TextRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/inference.Result"}}}},
                    "503": {"description": "Inference unavailable", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/submit": {
            "post": {
                "tags": ["analyze"],
                "summary": "Store a pre-scored answer",
                "requestBody": {"required": true, "content": {"application/json": {"schema": {"$ref": "#/components/schemas/analyze.SubmitRequest"}}}},
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/submissions.Submission"}}}},
                    "422": {"description": "Rejected by admission", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/submissions/{questionId}": {
            "get": {
                "tags": ["submissions"],
                "summary": "List a question's submissions by ascending perplexity",
                "parameters": [{"name": "questionId", "in": "path", "required": true, "schema": {"type": "integer"}}],
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/submissions.Submission"}}}}}}
            }
        },
        "/submissions/{questionId}/range": {
            "get": {
                "tags": ["submissions"],
                "summary": "List submissions in a perplexity range",
                "parameters": [
                    {"name": "questionId", "in": "path", "required": true, "schema": {"type": "integer"}},
                    {"name": "min", "in": "query", "schema": {"type": "number"}},
                    {"name": "max", "in": "query", "schema": {"type": "number"}},
                    {"name": "target", "in": "query", "schema": {"type": "number"}},
                    {"name": "range", "in": "query", "schema": {"type": "number", "default": 10}}
                ],
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/submissions.Submission"}}}}}}
            }
        },
        "/submission/{textHash}": {
            "get": {
                "tags": ["submissions"],
                "summary": "Look up a submission with its placement",
                "parameters": [{"name": "textHash", "in": "path", "required": true, "schema": {"type": "string"}}],
                "responses": {
                    "200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/submissions.Detail"}}}},
                    "404": {"description": "Not found", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ErrorResponse"}}}}
                }
            }
        },
        "/distribution/{questionId}": {
            "get": {
                "tags": ["submissions"],
                "summary": "Perplexity distribution for a question",
                "parameters": [{"name": "questionId", "in": "path", "required": true, "schema": {"type": "integer"}}],
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/submissions.Distribution"}}}}}
            }
        },
        "/questions": {
            "get": {
                "tags": ["meta"],
                "summary": "List prompts",
                "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"type": "array", "items": {"$ref": "#/components/schemas/questions.Question"}}}}}}
            }
        },
        "/health": {
            "get": {
                "tags": ["meta"],
                "summary": "Liveness",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["meta"],
                "summary": "Readiness of backing services",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Not ready"}}
            }
        },
        "/version": {
            "get": {
                "tags": ["meta"],
                "summary": "Build information",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "components": {
        "schemas": {
            "analyze.TextRequest": {
                "type": "object",
                "required": ["text"],
                "properties": {"text": {"type": "string"}}
            },
            "analyze.AnalyzeRequest": {
                "type": "object",
                "required": ["text"],
                "properties": {"text": {"type": "string"}, "question_id": {"type": "integer", "minimum": 0}}
            },
            "analyze.SubmitRequest": {
                "type": "object",
                "required": ["text", "perplexity"],
                "properties": {
                    "text": {"type": "string"},
                    "perplexity": {"type": "number"},
                    "question_id": {"type": "integer"},
                    "model_id": {"type": "integer"}
                }
            },
            "analyze.AnalyzeResponse": {
                "type": "object",
                "properties": {
                    "perplexity": {"type": "number"},
                    "by_token": {"type": "array", "items": {"$ref": "#/components/schemas/answerspan.TokenScore"}},
                    "placement": {"$ref": "#/components/schemas/ranking.Placement"},
                    "neighbors": {"$ref": "#/components/schemas/ranking.Neighbors"},
                    "histogram": {"$ref": "#/components/schemas/ranking.Hist"},
                    "submission_id": {"type": "integer"},
                    "text_hash": {"type": "string"},
                    "verdict": {"$ref": "#/components/schemas/slop.Verdict"}
                }
            },
            "admission.Result": {
                "type": "object",
                "properties": {"valid": {"type": "boolean"}, "sanitized": {"type": "string"}, "error": {"type": "string"}}
            },
            "answerspan.TokenScore": {
                "type": "object",
                "properties": {"token": {"type": "string"}, "perplexity": {"type": "number"}, "probability": {"type": "number"}}
            },
            "inference.Result": {
                "type": "object",
                "properties": {"total_perplexity": {"type": "number"}, "by_token": {"type": "array", "items": {"$ref": "#/components/schemas/answerspan.TokenScore"}}}
            },
            "ranking.Placement": {
                "type": "object",
                "properties": {"percentile": {"type": "number"}, "slop_percentile": {"type": "number"}, "rank": {"type": "integer"}, "total": {"type": "integer"}}
            },
            "ranking.Neighbor": {
                "type": "object",
                "properties": {"text": {"type": "string"}, "perplexity": {"type": "number"}}
            },
            "ranking.Neighbors": {
                "type": "object",
                "properties": {
                    "lower": {"type": "array", "items": {"$ref": "#/components/schemas/ranking.Neighbor"}},
                    "higher": {"type": "array", "items": {"$ref": "#/components/schemas/ranking.Neighbor"}}
                }
            },
            "ranking.Hist": {
                "type": "object",
                "properties": {"bins": {"type": "array", "items": {"type": "number"}}, "counts": {"type": "array", "items": {"type": "integer"}}}
            },
            "slop.Verdict": {
                "type": "object",
                "properties": {"title": {"type": "string"}, "subtitle": {"type": "string"}}
            },
            "submissions.Submission": {
                "type": "object",
                "properties": {
                    "id": {"type": "integer"},
                    "text_hash": {"type": "string"},
                    "text": {"type": "string"},
                    "perplexity": {"type": "number"},
                    "question_id": {"type": "integer"},
                    "model_id": {"type": "integer"},
                    "created_at": {"type": "string", "format": "date-time"}
                }
            },
            "submissions.Detail": {
                "type": "object",
                "properties": {
                    "submission": {"$ref": "#/components/schemas/submissions.Submission"},
                    "question_text": {"type": "string"},
                    "placement": {"$ref": "#/components/schemas/ranking.Placement"},
                    "neighbors": {"$ref": "#/components/schemas/ranking.Neighbors"},
                    "histogram": {"$ref": "#/components/schemas/ranking.Hist"},
                    "verdict": {"$ref": "#/components/schemas/slop.Verdict"}
                }
            },
            "submissions.Distribution": {
                "type": "object",
                "properties": {
                    "totalSubmissions": {"type": "integer"},
                    "histogram": {
                        "type": "object",
                        "properties": {
                            "bins": {"type": "array", "items": {"type": "number"}},
                            "counts": {"type": "array", "items": {"type": "integer"}},
                            "bin_size": {"type": "number"}
                        }
                    },
                    "stats": {
                        "type": "object",
                        "properties": {"min": {"type": "number"}, "max": {"type": "number"}, "mean": {"type": "number"}, "median": {"type": "number"}}
                    }
                }
            },
            "questions.Question": {
                "type": "object",
                "properties": {"id": {"type": "integer"}, "text": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "slopmeter API",
	Description:      "Scores how predictable a short answer is against everyone else's answers to the same prompt.",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
