package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Surveillance API",
        "description": "Exam scheduling, invigilation and workload balance backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Conflicts", "description": "Scheduling conflict reports"},
        {"name": "Workload", "description": "Surveillance workload balance"},
        {"name": "Plannings", "description": "Exam planning orchestration"},
        {"name": "Teachers", "description": "Teacher roster management"},
        {"name": "Catalog", "description": "Formations, timeslots and course loads"},
        {"name": "Exports", "description": "Downloadable reports"},
        {"name": "Auth", "description": "Authentication"}
    ],
    "paths": {
        "/conflicts/exam-dates": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Schedule-spread report: formations whose exams are not on one date/time",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/invigilators": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Teachers double-booked at the same date and time",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/rooms": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Rooms double-booked at the same date and time",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/duplicates": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Duplicate plannings sharing formation, timeslot and section",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/workload/balance": {
            "post": {
                "tags": ["Workload"],
                "summary": "Workload balance report (NbrSS ratio and per-teacher classification)",
                "parameters": [
                    {"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/WorkloadRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Negative target", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings": {
            "get": {
                "tags": ["Plannings"],
                "summary": "List plannings with joined schedule and formation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Plannings"],
                "summary": "Create a planning with its invigilator set",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePlanningRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings/{id}": {
            "get": {
                "tags": ["Plannings"],
                "summary": "Get one planning",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Plannings"],
                "summary": "Replace a planning and its invigilator set",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePlanningRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Plannings"],
                "summary": "Delete a planning; its invigilations cascade",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/plannings/{id}/invigilators": {
            "get": {
                "tags": ["Plannings"],
                "summary": "List a planning's invigilator set",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/monitoring": {
            "get": {
                "tags": ["Plannings"],
                "summary": "Flattened surveillance duty listing sorted by teacher, date and time",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "department", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Teachers"],
                "summary": "Create teacher",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeacherRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Duplicate code", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/search": {
            "post": {
                "tags": ["Teachers"],
                "summary": "Search teachers by posted criteria",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SearchTeachersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/teachers/{code}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Teachers"],
                "summary": "Update teacher",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateTeacherRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Teachers"],
                "summary": "Delete teacher",
                "parameters": [
                    {"name": "code", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"}
                }
            }
        },
        "/formations": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List formations",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/timeslots": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List timeslots",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create timeslot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTimeSlotRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/course-loads": {
            "get": {
                "tags": ["Catalog"],
                "summary": "List course loads",
                "parameters": [
                    {"name": "teacher_codes", "in": "query", "type": "string"},
                    {"name": "academic_year", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Catalog"],
                "summary": "Create course load",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseLoadRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/monitoring": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the surveillance duty listing",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/exports/workload": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download the workload balance analysis",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "target", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Revoke the caller's refresh tokens",
                "responses": {
                    "204": {"description": "Logged out"}
                }
            }
        }
    },
    "definitions": {
        "WorkloadRequest": {
            "type": "object",
            "properties": {
                "target_surveillances": {"type": "integer", "minimum": 0}
            }
        },
        "CreatePlanningRequest": {
            "type": "object",
            "required": ["formation_id", "timeslot_id", "section", "invigilators"],
            "properties": {
                "formation_id": {"type": "string"},
                "timeslot_id": {"type": "string"},
                "section": {"type": "string"},
                "session": {"type": "string"},
                "required_invigilators": {"type": "integer", "minimum": 0},
                "invigilators": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/InvigilatorInput"}
                }
            }
        },
        "UpdatePlanningRequest": {
            "type": "object",
            "required": ["invigilators"],
            "properties": {
                "formation_id": {"type": "string"},
                "timeslot_id": {"type": "string"},
                "section": {"type": "string"},
                "session": {"type": "string"},
                "required_invigilators": {"type": "integer", "minimum": 0},
                "invigilators": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/InvigilatorInput"}
                }
            }
        },
        "InvigilatorInput": {
            "type": "object",
            "required": ["teacher_code"],
            "properties": {
                "teacher_code": {"type": "string"},
                "is_lead": {"type": "boolean"}
            }
        },
        "CreateTeacherRequest": {
            "type": "object",
            "required": ["code", "last_name"],
            "properties": {
                "code": {"type": "string"},
                "last_name": {"type": "string"},
                "first_name": {"type": "string"},
                "department": {"type": "string"},
                "grade": {"type": "string"},
                "email1": {"type": "string"},
                "email2": {"type": "string"}
            }
        },
        "SearchTeachersRequest": {
            "type": "object",
            "properties": {
                "query": {"type": "string"},
                "department": {"type": "string"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "UpdateTeacherRequest": {
            "type": "object",
            "required": ["last_name"],
            "properties": {
                "last_name": {"type": "string"},
                "first_name": {"type": "string"},
                "department": {"type": "string"},
                "grade": {"type": "string"},
                "email1": {"type": "string"},
                "email2": {"type": "string"}
            }
        },
        "CreateTimeSlotRequest": {
            "type": "object",
            "required": ["exam_date", "start_time", "room"],
            "properties": {
                "exam_date": {"type": "string", "format": "date"},
                "start_time": {"type": "string"},
                "room": {"type": "string"}
            }
        },
        "CreateCourseLoadRequest": {
            "type": "object",
            "required": ["teacher_code", "academic_year"],
            "properties": {
                "teacher_code": {"type": "string"},
                "formation_id": {"type": "string"},
                "section": {"type": "string"},
                "group": {"type": "string"},
                "type": {"type": "string"},
                "module_name": {"type": "string"},
                "semester": {"type": "string"},
                "academic_year": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
