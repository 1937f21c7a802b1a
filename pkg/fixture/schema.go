package fixture

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "mockhttp-fixture.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func fixtureSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add fixture schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidationError lists the schema violations found in one document.
type ValidationError struct {
	Source string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid fixture: %s", e.Source, strings.Join(e.Issues, "; "))
}

// validate checks YAML data against the fixture schema.
func validate(data []byte, source string) error {
	schema, err := fixtureSchema()
	if err != nil {
		return err
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: parsing YAML: %w", source, err)
	}

	// The validator expects values shaped like encoding/json output.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%s: fixture is not representable as JSON: %w", source, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var instance interface{}
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("%s: %w", source, err)
	}

	if err := schema.Validate(instance); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return &ValidationError{Source: source, Issues: collectIssues(ve)}
		}
		return fmt.Errorf("%s: %w", source, err)
	}
	return nil
}

// collectIssues flattens the leaf causes of a validation error.
func collectIssues(ve *jsonschema.ValidationError) []string {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{loc + ": " + ve.Message}
	}
	var out []string
	for _, c := range ve.Causes {
		out = append(out, collectIssues(c)...)
	}
	return out
}
