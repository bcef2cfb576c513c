package launch

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrInvalidConfig is returned when launch settings fail schema validation.
var ErrInvalidConfig = errors.New("invalid launch configuration")

//go:embed schemas/launch.schema.json
var schemaJSON []byte

// SchemaJSON returns the embedded launch.config.json schema.
func SchemaJSON() []byte {
	return append([]byte(nil), schemaJSON...)
}

type compiledSchemas struct {
	document *jsonschema.Schema
	launch   *jsonschema.Schema
}

var loadSchemas = sync.OnceValues(func() (compiledSchemas, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return compiledSchemas{}, fmt.Errorf("parsing embedded schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(SchemaURL, doc); err != nil {
		return compiledSchemas{}, fmt.Errorf("adding embedded schema: %w", err)
	}

	document, err := compiler.Compile(SchemaURL)
	if err != nil {
		return compiledSchemas{}, fmt.Errorf("compiling schema: %w", err)
	}
	launch, err := compiler.Compile(SchemaURL + "#/$defs/launch")
	if err != nil {
		return compiledSchemas{}, fmt.Errorf("compiling launch schema: %w", err)
	}
	return compiledSchemas{document: document, launch: launch}, nil
})

// ValidateDocument checks the contents of a launch.config.json file.
func ValidateDocument(data []byte) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	return validate(schemas.document, data)
}

// ValidateLaunch checks a bare launch object, as embedded in a manifest.
func ValidateLaunch(data []byte) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	return validate(schemas.launch, data)
}

func validate(schema *jsonschema.Schema, data []byte) error {
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
