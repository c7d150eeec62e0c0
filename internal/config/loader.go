package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tacogips/clismith/internal/debug"
	"gopkg.in/yaml.v3"
)

// DocumentExtensions lists the file extensions LoadDocument accepts.
// JSON is read with the YAML parser since JSON is a subset of YAML 1.2.
var DocumentExtensions = []string{".yaml", ".yml", ".json"}

// LoadDocument reads a raw configuration document from path.
func LoadDocument(path string) (*Mapping, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !isDocumentExtension(ext) {
		return nil, NewConfigError(ConfigUnsupported, path,
			fmt.Sprintf("unsupported file extension %q (expected one of %s)", ext, strings.Join(DocumentExtensions, ", ")))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewConfigErrorWithCause(ConfigNotFound, path, "configuration file not found", err)
		}
		return nil, NewConfigErrorWithCause(ConfigInvalid, path, "failed to read configuration file", err)
	}

	debug.Debug("[config] Loaded %s (%d bytes)", path, len(data))
	return ParseDocument(data, path)
}

// ParseDocument parses YAML or JSON bytes into an ordered Mapping.
// name is only used in error messages.
func ParseDocument(data []byte, name string) (*Mapping, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, name, "invalid YAML/JSON syntax", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, NewConfigError(ConfigInvalid, name, "document is empty")
	}

	value, err := convertNode(root.Content[0], map[*yaml.Node]bool{})
	if err != nil {
		return nil, NewConfigErrorWithCause(ConfigInvalid, name, "failed to decode document", err)
	}
	m, ok := value.(*Mapping)
	if !ok {
		return nil, NewConfigError(ConfigInvalid, name,
			fmt.Sprintf("top-level value must be a mapping, got %s", kindName(root.Content[0])))
	}
	return m, nil
}

// convertNode turns a yaml.Node into document values. onPath holds the nodes
// currently being converted so aliases that contain themselves are rejected.
func convertNode(n *yaml.Node, onPath map[*yaml.Node]bool) (interface{}, error) {
	if onPath[n] {
		return nil, fmt.Errorf("line %d: alias refers to a value that contains itself", n.Line)
	}
	onPath[n] = true
	defer delete(onPath, n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return convertNode(n.Content[0], onPath)
	case yaml.AliasNode:
		return convertNode(n.Alias, onPath)
	case yaml.MappingNode:
		m := &Mapping{}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode, valueNode := n.Content[i], n.Content[i+1]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", keyNode.Line)
			}
			value, err := convertNode(valueNode, onPath)
			if err != nil {
				return nil, err
			}
			m.Add(keyNode.Value, value)
		}
		return m, nil
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(n.Content))
		for _, child := range n.Content {
			value, err := convertNode(child, onPath)
			if err != nil {
				return nil, err
			}
			items = append(items, value)
		}
		return items, nil
	case yaml.ScalarNode:
		var v interface{}
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
	}
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	default:
		return "an unknown node"
	}
}

func isDocumentExtension(ext string) bool {
	for _, e := range DocumentExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
