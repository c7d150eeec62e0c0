package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dump formats accepted by Encode.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Encode renders v, a template context or manifest, as indented JSON or YAML.
func Encode(v interface{}, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML, "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, NewValidationError(fmt.Sprintf("unknown format %q (expected json or yaml)", format), nil)
	}
}
