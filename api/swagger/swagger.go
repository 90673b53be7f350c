package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Resource Planner API",
        "description": "Allocation scheduling engine with conflict detection, resource lanes and undo/redo",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Allocations", "description": "Allocation CRUD, moves and bulk operations"},
        {"name": "Planner", "description": "Derived state, history and exports"},
        {"name": "Employees", "description": "Read-only employee roster"},
        {"name": "Projects", "description": "Read-only project catalog"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/allocations": {
            "get": {
                "tags": ["Allocations"],
                "summary": "List allocations",
                "parameters": [
                    {"name": "employeeId", "in": "query", "type": "string"},
                    {"name": "projectId", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"},
                    {"name": "from", "in": "query", "type": "string"},
                    {"name": "to", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "sort", "in": "query", "type": "string"},
                    {"name": "order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Allocations"],
                "summary": "Create allocations for one or more employees",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateAllocationsRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocations/{id}": {
            "patch": {
                "tags": ["Allocations"],
                "summary": "Update allocation fields",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AllocationFields"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Allocations"],
                "summary": "Delete one allocation",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/allocations/delete": {
            "post": {
                "tags": ["Allocations"],
                "summary": "Delete a batch of allocations",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteAllocationsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocations/bulk": {
            "post": {
                "tags": ["Allocations"],
                "summary": "Apply one operation to many allocations sequentially",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/BulkOperationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocations/{id}/move": {
            "post": {
                "tags": ["Allocations"],
                "summary": "Move an allocation to a new employee and date",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveAllocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/allocations/{id}/validate-drop": {
            "post": {
                "tags": ["Allocations"],
                "summary": "Pre-flight check for a proposed move",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MoveAllocationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/conflicts": {
            "get": {
                "tags": ["Planner"],
                "summary": "List conflicts detected against the current allocation set",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/lanes": {
            "get": {
                "tags": ["Planner"],
                "summary": "List per-employee resource lanes",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/history": {
            "get": {
                "tags": ["Planner"],
                "summary": "Report undo/redo availability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/undo": {
            "post": {
                "tags": ["Planner"],
                "summary": "Undo the most recent operation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/redo": {
            "post": {
                "tags": ["Planner"],
                "summary": "Reapply the most recently undone operation",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/refresh": {
            "post": {
                "tags": ["Planner"],
                "summary": "Reload the working set from the store",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/snapshot": {
            "get": {
                "tags": ["Planner"],
                "summary": "Capture the full planner state",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/export": {
            "get": {
                "tags": ["Planner"],
                "summary": "Export the planner state as JSON, CSV or PDF",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "Rendered export"}
                }
            }
        },
        "/planner/selection": {
            "get": {
                "tags": ["Planner"],
                "summary": "Return the current selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Planner"],
                "summary": "Replace the current selection",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SelectionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Planner"],
                "summary": "Clear the current selection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/planner/selection/all": {
            "post": {
                "tags": ["Planner"],
                "summary": "Select every allocation in the working set",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/employees": {
            "get": {
                "tags": ["Employees"],
                "summary": "List employees",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/employees/{id}": {
            "get": {
                "tags": ["Employees"],
                "summary": "Get employee",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/projects": {
            "get": {
                "tags": ["Projects"],
                "summary": "List projects",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/projects/{id}": {
            "get": {
                "tags": ["Projects"],
                "summary": "Get project",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "Allocation": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "employee_id": {"type": "string"},
                "project_id": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "allocated_hours": {"type": "number"},
                "role": {"type": "string"},
                "status": {"type": "string"},
                "active": {"type": "boolean"},
                "notes": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "kind": {"type": "string"},
                "allocation_ids": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"},
                "severity": {"type": "string"},
                "auto_resolvable": {"type": "boolean"}
            }
        },
        "ResourceLane": {
            "type": "object",
            "properties": {
                "employee": {"type": "object"},
                "allocations": {"type": "array", "items": {"$ref": "#/definitions/Allocation"}},
                "total_hours": {"type": "number"},
                "capacity": {"type": "number"},
                "utilization": {"type": "integer"}
            }
        },
        "CreateAllocationsRequest": {
            "type": "object",
            "properties": {
                "employee_ids": {"type": "array", "items": {"type": "string"}},
                "project_id": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "hours": {"type": "number"},
                "role": {"type": "string"},
                "notes": {"type": "string"}
            },
            "required": ["employee_ids", "project_id", "start_date"]
        },
        "AllocationFields": {
            "type": "object",
            "properties": {
                "employee_id": {"type": "string"},
                "project_id": {"type": "string"},
                "start_date": {"type": "string"},
                "end_date": {"type": "string"},
                "allocated_hours": {"type": "number"},
                "role": {"type": "string"},
                "status": {"type": "string"},
                "active": {"type": "boolean"},
                "notes": {"type": "string"}
            }
        },
        "MoveAllocationRequest": {
            "type": "object",
            "properties": {
                "target_employee_id": {"type": "string"},
                "target_date": {"type": "string"}
            },
            "required": ["target_employee_id", "target_date"]
        },
        "DeleteAllocationsRequest": {
            "type": "object",
            "properties": {
                "allocation_ids": {"type": "array", "items": {"type": "string"}}
            },
            "required": ["allocation_ids"]
        },
        "BulkOperationRequest": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["move", "update", "delete"]},
                "allocation_ids": {"type": "array", "items": {"type": "string"}},
                "target_employee_id": {"type": "string"},
                "target_date": {"type": "string"},
                "fields": {"$ref": "#/definitions/AllocationFields"}
            },
            "required": ["kind", "allocation_ids"]
        },
        "SelectionRequest": {
            "type": "object",
            "properties": {
                "allocation_ids": {"type": "array", "items": {"type": "string"}},
                "mode": {"type": "string", "enum": ["single", "multiple"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
