package graphbuilder

// graphSchema is the bundled JSON Schema a payload must satisfy before
// construction is attempted. It constrains shape (required fields, port
// mode enum) but not domain semantics — Build checks for cycles
// separately before construction, and port compatibility is checked by
// the graph at Connect time.
const graphSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "dagengine graph payload",
  "type": "object",
  "required": ["nodes"],
  "properties": {
    "workflow_id": {"type": "string"},
    "nodes": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "runner"],
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "runner": {"type": "string", "minLength": 1},
          "priority": {"type": "integer"},
          "cost": {"type": "integer"},
          "timeout_ms": {"type": "integer", "minimum": 0},
          "retries": {"type": "integer", "minimum": 0},
          "metadata": {"type": "object"},
          "inputs": {
            "type": "array",
            "items": {"$ref": "#/definitions/port"}
          },
          "outputs": {
            "type": "array",
            "items": {"$ref": "#/definitions/port"}
          }
        }
      }
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["source", "source_port", "target", "target_port"],
        "properties": {
          "id": {"type": "string"},
          "source": {"type": "string", "minLength": 1},
          "source_port": {"type": "string", "minLength": 1},
          "target": {"type": "string", "minLength": 1},
          "target_port": {"type": "string", "minLength": 1}
        }
      }
    }
  },
  "definitions": {
    "port": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "mode": {"type": "string", "enum": ["push", "pull"]}
      }
    }
  }
}`
