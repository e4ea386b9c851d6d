package report

// Schema is the JSON Schema (Draft 2020-12) for the Vouch check JSON
// output. It documents the structure returned by WriteJSON.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/vouch/check-report.schema.json",
  "title": "Vouch Check Report",
  "description": "Output schema for vouch check --format=json",
  "type": "object",
  "required": ["version", "findings", "summary"],
  "properties": {
    "version": {
      "type": "string",
      "description": "Schema version (semver)"
    },
    "findings": {
      "type": "array",
      "items": { "$ref": "#/$defs/Finding" }
    },
    "errors": {
      "type": "array",
      "items": { "$ref": "#/$defs/UnitError" }
    },
    "summary": { "$ref": "#/$defs/Summary" }
  },
  "$defs": {
    "Finding": {
      "type": "object",
      "required": ["file", "line", "col", "test", "message"],
      "properties": {
        "file": {
          "type": "string",
          "description": "Path of the analyzed source file"
        },
        "line": {
          "type": "integer",
          "minimum": 1,
          "description": "1-based line of the test name"
        },
        "col": {
          "type": "integer",
          "minimum": 1,
          "description": "1-based column of the test name"
        },
        "test": {
          "type": "string",
          "description": "Name of the flagged test method"
        },
        "message": {
          "type": "string",
          "description": "Human-readable finding message"
        }
      }
    },
    "UnitError": {
      "type": "object",
      "required": ["path", "message"],
      "properties": {
        "path": {
          "type": "string",
          "description": "File that could not be analyzed"
        },
        "message": {
          "type": "string",
          "description": "Reason the unit was skipped"
        }
      }
    },
    "Summary": {
      "type": "object",
      "required": ["units", "findings", "errors"],
      "properties": {
        "units": {
          "type": "integer",
          "description": "Number of analysis units discovered"
        },
        "findings": {
          "type": "integer",
          "description": "Total findings across all units"
        },
        "errors": {
          "type": "integer",
          "description": "Number of units skipped with errors"
        }
      }
    }
  }
}`
