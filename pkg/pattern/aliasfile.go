package pattern

import (
	"embed"
	"errors"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// aliasSchemaFS holds the embedded alias-override JSON schema.
//
//go:embed alias-override-schema.json
var aliasSchemaFS embed.FS

const aliasSchemaName = "alias-override-schema.json"

// ErrNoAliases indicates an override file without alias entries.
var ErrNoAliases = errors.New("alias file defines no aliases")

type aliasFile struct {
	Aliases map[string][]string `yaml:"aliases"`
}

// LoadAliasFile reads a YAML alias-override file and returns the
// built-in table with its entries merged on top.
func LoadAliasFile(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	overrides, err := parseAliasOverrides(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return NewTable(overrides), nil
}

func parseAliasOverrides(content []byte) (map[string][]string, error) {
	var file aliasFile

	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	if len(file.Aliases) == 0 {
		return nil, ErrNoAliases
	}

	return file.Aliases, nil
}

// ValidateAliasFile checks a YAML alias-override file against the
// embedded schema. It returns one description per violation; an empty
// slice means the file is valid.
func ValidateAliasFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias file: %w", err)
	}

	return validateAliasContent(content)
}

func validateAliasContent(content []byte) ([]string, error) {
	var doc any

	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse alias file: %w", err)
	}

	schemaBytes, err := aliasSchemaFS.ReadFile(aliasSchemaName)
	if err != nil {
		return nil, fmt.Errorf("read embedded schema: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}

	return problems, nil
}
