package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema for Config, used by "actionctl config
// schema" so editors and validators can check a config file before it
// is ever loaded.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "actionctl Configuration"
	schema.Description = "Configuration schema for the actionctl action server"

	return json.MarshalIndent(schema, "", "  ")
}
