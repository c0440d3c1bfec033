package gqlconfig

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
	yaml "gopkg.in/yaml.v2"
)

// configSchemaJSON describes the configuration file shape. Decoding into
// Config would silently drop unknown keys, so raw content is validated
// against this schema first to surface typos and misplaced options.
const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "schema": { "$ref": "#/definitions/stringOrList" },
    "schemaContent": { "$ref": "#/definitions/stringOrList" },
    "documents": { "$ref": "#/definitions/stringOrList" },
    "outputs": { "$ref": "#/definitions/outputs" },
    "generates": { "$ref": "#/definitions/outputs" },
    "config": { "type": "object" },
    "hooks": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "afterGenerate": {
          "type": "array",
          "items": { "type": "string" }
        }
      }
    }
  },
  "definitions": {
    "stringOrList": {
      "oneOf": [
        { "type": "string" },
        { "type": "array", "items": { "type": "string" } }
      ]
    },
    "outputs": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "generators": { "$ref": "#/definitions/generators" },
          "plugins": { "$ref": "#/definitions/generators" },
          "prelude": { "type": "string" },
          "config": { "type": "object" }
        }
      }
    },
    "generators": {
      "type": "array",
      "items": {
        "oneOf": [
          { "type": "string" },
          {
            "type": "object",
            "minProperties": 1,
            "maxProperties": 1,
            "additionalProperties": { "type": "object" }
          }
        ]
      }
    }
  }
}`

var configSchema = jsonschema.MustCompileString("graphql-codegen.schema.json", configSchemaJSON)

// validateRaw checks YAML content against the configuration schema before
// it is decoded into Config.
func validateRaw(raw []byte) error {
	var decoded interface{}
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return errors.Wrap(err, "not valid YAML")
	}

	// The schema validator expects values as encoding/json decodes them,
	// so the YAML value is round-tripped through JSON.
	encoded, err := json.Marshal(jsonValue(decoded))
	if err != nil {
		return errors.Wrap(err, "failed to encode config for validation")
	}
	var value interface{}
	if err := json.Unmarshal(encoded, &value); err != nil {
		return errors.Wrap(err, "failed to decode config for validation")
	}

	if err := configSchema.Validate(value); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			return errors.New(formatValidationError(validationErr))
		}
		return err
	}
	return nil
}

// jsonValue rewrites the yaml.v2 value tree into one encoding/json can
// marshal, turning map[interface{}]interface{} into map[string]interface{}.
func jsonValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[interface{}]interface{}:
		converted := make(map[string]interface{}, len(typed))
		for key, item := range typed {
			converted[fmt.Sprintf("%v", key)] = jsonValue(item)
		}
		return converted
	case []interface{}:
		converted := make([]interface{}, len(typed))
		for i, item := range typed {
			converted[i] = jsonValue(item)
		}
		return converted
	default:
		return value
	}
}

func formatValidationError(err *jsonschema.ValidationError) string {
	var sb strings.Builder
	sb.WriteString("config does not match the expected shape:")
	for _, leaf := range leafCauses(err) {
		location := leaf.InstanceLocation
		if location == "" {
			location = "/"
		}
		fmt.Fprintf(&sb, "\n  %s: %s", location, leaf.Message)
	}
	return sb.String()
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}
