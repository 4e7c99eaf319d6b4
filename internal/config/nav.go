package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// NavEntry is one item of an explicit `nav` section: either a page
// (`Title: path.md`, or a bare `path.md`) or a titled section with children.
type NavEntry struct {
	Title    string
	Path     string
	Children []NavEntry
}

// IsSection reports whether the entry groups other entries.
func (n NavEntry) IsSection() bool {
	return n.Path == "" && n.Children != nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *NavEntry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		n.Path = node.Value
		return nil
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: nav entry must have exactly one key", node.Line)
		}
		n.Title = node.Content[0].Value
		value := node.Content[1]
		switch value.Kind {
		case yaml.ScalarNode:
			n.Path = value.Value
			return nil
		case yaml.SequenceNode:
			n.Children = make([]NavEntry, 0, len(value.Content))
			return value.Decode(&n.Children)
		}
		return fmt.Errorf("line %d: nav entry %q must map to a path or a list", value.Line, n.Title)
	default:
		return fmt.Errorf("line %d: unsupported nav entry", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (n NavEntry) MarshalYAML() (any, error) {
	switch {
	case n.IsSection():
		return map[string]any{n.Title: n.Children}, nil
	case n.Title == "":
		return n.Path, nil
	default:
		return map[string]string{n.Title: n.Path}, nil
	}
}
