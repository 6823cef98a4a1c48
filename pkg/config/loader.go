package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Common errors for document loading and validation.
var (
	ErrFileNotFound      = errors.New("configuration file not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidJSON       = errors.New("invalid JSON syntax")
	ErrInvalidYAML       = errors.New("invalid YAML syntax")
	ErrEmptyFile         = errors.New("configuration file is empty")
	ErrSchemaViolation   = errors.New("document does not match schema")
	ErrInvalidDefinition = errors.New("invalid generator definition")
)

// Format is a document encoding.
type Format string

// Document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension: .yaml and .yml are YAML,
// everything else JSON.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadFromFile reads a document, resolves its includes and validates the
// result. Include patterns are relative to the including file.
func LoadFromFile(path string) (*Document, error) {
	l := &loader{visited: make(map[string]bool)}
	doc, err := l.load(path)
	if err != nil {
		return nil, err
	}
	doc.Include = nil
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseYAML parses and validates a YAML document. Includes are not resolved.
func ParseYAML(data []byte) (*Document, error) {
	return parseAndValidate(data, FormatYAML)
}

// ParseJSON parses and validates a JSON document. Includes are not resolved.
func ParseJSON(data []byte) (*Document, error) {
	return parseAndValidate(data, FormatJSON)
}

func parseAndValidate(data []byte, format Format) (*Document, error) {
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// Parse decodes a document and checks it against the schema without the
// semantic checks of Validate.
func Parse(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyFile
	}

	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	default:
		if !json.Valid(data) {
			return nil, ErrInvalidJSON
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
	}
	return &doc, nil
}

// ToYAML marshals a document to YAML.
func ToYAML(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return data, nil
}

// ToJSON marshals a document to indented JSON.
func ToJSON(doc *Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return append(data, '\n'), nil
}

type loader struct {
	visited map[string]bool
}

func (l *loader) load(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if l.visited[abs] {
		return nil, fmt.Errorf("%w: %s is included more than once", ErrInvalidDefinition, path)
	}
	l.visited[abs] = true

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse([]byte(ExpandEnvVars(string(data))), FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	baseDir := filepath.Dir(path)
	for i, pattern := range doc.Include {
		matches, err := expandGlob(ResolvePath(baseDir, pattern))
		if err != nil {
			return nil, fmt.Errorf("%s: include[%d]: expanding glob pattern: %w", path, i, err)
		}
		for _, match := range matches {
			included, err := l.load(match)
			if err != nil {
				return nil, err
			}
			doc.Generators = append(doc.Generators, included.Generators...)
		}
	}
	return doc, nil
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	return data, nil
}

// expandGlob expands a pattern to sorted matching paths. Patterns with "**"
// go through doublestar; the rest through filepath.Glob.
func expandGlob(pattern string) ([]string, error) {
	var (
		matches []string
		err     error
	)
	if strings.Contains(pattern, "**") {
		matches, err = doublestar.FilepathGlob(pattern)
	} else {
		matches, err = filepath.Glob(pattern)
	}
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// ResolvePath resolves path against baseDir unless it is absolute.
func ResolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// envVarPattern matches ${VAR_NAME} or ${VAR_NAME:-default}
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// ExpandEnvVars expands ${VAR_NAME} and ${VAR_NAME:-default} references.
// Unset variables without a default expand to the empty string.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		sub := envVarPattern.FindStringSubmatch(match)
		if val := os.Getenv(sub[1]); val != "" {
			return val
		}
		return sub[2]
	})
}
