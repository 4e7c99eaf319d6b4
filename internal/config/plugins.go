package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PluginEntry enables one plugin with its options.
type PluginEntry struct {
	Name    string
	Options map[string]any
}

// PluginList is the ordered `plugins` section. Each item is either a bare
// name or a single-key mapping of name to options; a plain mapping of
// name to options is accepted as well.
type PluginList []PluginEntry

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *PluginList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		out := make(PluginList, 0, len(node.Content))
		for _, item := range node.Content {
			entries, err := decodePluginItem(item)
			if err != nil {
				return err
			}
			out = append(out, entries...)
		}
		*l = out
		return nil
	case yaml.MappingNode:
		entries, err := decodePluginItem(node)
		if err != nil {
			return err
		}
		*l = entries
		return nil
	default:
		return fmt.Errorf("line %d: plugins must be a list or a mapping", node.Line)
	}
}

func decodePluginItem(node *yaml.Node) (PluginList, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return PluginList{{Name: node.Value}}, nil
	case yaml.MappingNode:
		out := make(PluginList, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			entry := PluginEntry{Name: node.Content[i].Value}
			if opts := node.Content[i+1]; opts.Tag != "!!null" {
				if err := opts.Decode(&entry.Options); err != nil {
					return nil, fmt.Errorf("plugin %s: %w", entry.Name, err)
				}
			}
			out = append(out, entry)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported plugin entry", node.Line)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (l PluginList) MarshalYAML() (any, error) {
	out := make([]any, 0, len(l))
	for _, p := range l {
		if len(p.Options) == 0 {
			out = append(out, p.Name)
			continue
		}
		out = append(out, map[string]any{p.Name: p.Options})
	}
	return out, nil
}

// Get returns the entry for the named plugin.
func (l PluginList) Get(name string) (PluginEntry, bool) {
	for _, p := range l {
		if p.Name == name {
			return p, true
		}
	}
	return PluginEntry{}, false
}
