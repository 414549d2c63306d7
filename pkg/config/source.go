package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2/unstable"
	"gopkg.in/yaml.v3"
)

// Handler receives one section/key/value triple per config entry, in file order.
// Keys that appear before any section are reported with an empty section name.
// Returning an error stops parsing.
type Handler func(section, key, value string) error

// Format identifies the syntax of a config source.
type Format int

const (
	// FormatYAML is a top-level mapping of section name to a mapping of scalars.
	FormatYAML Format = iota
	// FormatTOML uses [section] tables with key = value pairs.
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatForPath picks the config format from the file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("%w: %q (expected .yaml, .yml or .toml)", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse walks data in the given format and calls h for every entry.
func Parse(format Format, data []byte, h Handler) error {
	switch format {
	case FormatYAML:
		return ParseYAML(data, h)
	case FormatTOML:
		return ParseTOML(data, h)
	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
}

// ParseYAML walks a YAML document through the node API so that entries are
// reported in document order.
//
// Structure:
//
//	button_1:
//	  label: Open Terminal
//	  command: gnome-terminal
//
// Merge keys (<<) inside a section follow YAML merge semantics, which allows
// color presets to be shared through anchors.
func ParseYAML(data []byte, h Handler) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing yaml: %w", err)
	}

	// 空文档：没有任何配置节
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: top level must be a mapping of sections", root.Line)
	}

	seen := make(map[string]bool)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valueNode := resolveAlias(root.Content[i+1])

		if seen[keyNode.Value] {
			return fmt.Errorf("line %d: %q defined more than once", keyNode.Line, keyNode.Value)
		}
		seen[keyNode.Value] = true

		switch valueNode.Kind {
		case yaml.MappingNode:
			if err := walkYAMLSection(keyNode.Value, valueNode, h); err != nil {
				return err
			}
		case yaml.ScalarNode:
			// 节外的键值对（与 INI 中第一个节之前的键一致）
			if err := h("", keyNode.Value, valueNode.Value); err != nil {
				return err
			}
		default:
			return fmt.Errorf("line %d: section %q must be a mapping", keyNode.Line, keyNode.Value)
		}
	}
	return nil
}

// yamlEntry is one effective key/value of a section after merge keys are applied.
type yamlEntry struct {
	key    string
	value  string
	merged bool
}

// walkYAMLSection reports the effective entries of one section.
//
// Merged keys come first, then the section's own keys in document order.
// A merged text_alpha is held back until the end so that a shared preset
// never finalizes a button before its own keys arrive.
func walkYAMLSection(section string, node *yaml.Node, h Handler) error {
	entries, err := flattenYAMLMapping(section, node)
	if err != nil {
		return err
	}

	finalizeKey := buttonFieldKeys[fieldTextAlpha]
	var deferred []yamlEntry
	for _, e := range entries {
		if e.merged && e.key == finalizeKey {
			deferred = append(deferred, e)
			continue
		}
		if err := h(section, e.key, e.value); err != nil {
			return err
		}
	}
	for _, e := range deferred {
		if err := h(section, e.key, e.value); err != nil {
			return err
		}
	}
	return nil
}

// flattenYAMLMapping applies YAML merge semantics to a mapping: explicit
// keys override merged ones, and with a sequence of merge sources the
// earlier source wins.
func flattenYAMLMapping(section string, node *yaml.Node) ([]yamlEntry, error) {
	var explicit, merged []yamlEntry
	explicitKeys := make(map[string]bool)
	mergedKeys := make(map[string]bool)

	addMerged := func(src *yaml.Node) error {
		entries, err := flattenYAMLMapping(section, src)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if mergedKeys[e.key] {
				continue
			}
			mergedKeys[e.key] = true
			e.merged = true
			merged = append(merged, e)
		}
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		valueNode := resolveAlias(node.Content[i+1])

		if keyNode.Value == "<<" {
			switch valueNode.Kind {
			case yaml.MappingNode:
				if err := addMerged(valueNode); err != nil {
					return nil, err
				}
			case yaml.SequenceNode:
				for _, item := range valueNode.Content {
					item = resolveAlias(item)
					if item.Kind != yaml.MappingNode {
						return nil, fmt.Errorf("line %d: %s: merge sources must be mappings", item.Line, section)
					}
					if err := addMerged(item); err != nil {
						return nil, err
					}
				}
			default:
				return nil, fmt.Errorf("line %d: %s: merge value must be a mapping", keyNode.Line, section)
			}
			continue
		}

		if valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: %s.%s must be a scalar value", keyNode.Line, section, keyNode.Value)
		}
		if explicitKeys[keyNode.Value] {
			return nil, fmt.Errorf("line %d: %s.%s defined more than once", keyNode.Line, section, keyNode.Value)
		}
		explicitKeys[keyNode.Value] = true
		explicit = append(explicit, yamlEntry{key: keyNode.Value, value: valueNode.Value})
	}

	out := make([]yamlEntry, 0, len(merged)+len(explicit))
	for _, e := range merged {
		if !explicitKeys[e.key] {
			out = append(out, e)
		}
	}
	return append(out, explicit...), nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// ParseTOML walks a TOML document expression by expression.
//
// Structure:
//
//	[button_1]
//	label = "Open Terminal"
//	command = "gnome-terminal"
//
// Array tables, arrays and inline tables have no meaning for the panel and
// are rejected.
func ParseTOML(data []byte, h Handler) error {
	p := unstable.Parser{}
	p.Reset(data)

	// TOML forbids redefining a table or a key
	section := ""
	tables := make(map[string]bool)
	keys := make(map[string]bool)
	for p.NextExpression() {
		expr := p.Expression()
		if expr == nil {
			continue
		}

		switch expr.Kind {
		case unstable.Table:
			section = joinTOMLKey(expr.Key())
			if tables[section] {
				return fmt.Errorf("parsing toml: table [%s] defined more than once", section)
			}
			tables[section] = true
		case unstable.ArrayTable:
			return fmt.Errorf("parsing toml: array table [[%s]] is not supported", joinTOMLKey(expr.Key()))
		case unstable.KeyValue:
			key := joinTOMLKey(expr.Key())
			qualified := section + "\x00" + key
			if keys[qualified] {
				return fmt.Errorf("parsing toml: %s.%s defined more than once", section, key)
			}
			keys[qualified] = true
			value, err := tomlScalar(expr.Value())
			if err != nil {
				return fmt.Errorf("parsing toml: %s.%s: %w", section, key, err)
			}
			if err := h(section, key, value); err != nil {
				return err
			}
		}
	}

	if err := p.Error(); err != nil {
		return fmt.Errorf("parsing toml: %w", err)
	}
	return nil
}

func joinTOMLKey(it unstable.Iterator) string {
	var parts []string
	for it.Next() {
		parts = append(parts, string(it.Node().Data))
	}
	return strings.Join(parts, ".")
}

func tomlScalar(v *unstable.Node) (string, error) {
	if v == nil {
		return "", fmt.Errorf("missing value")
	}
	switch v.Kind {
	case unstable.String, unstable.Integer, unstable.Float, unstable.Bool:
		return string(v.Data), nil
	default:
		return "", fmt.Errorf("unsupported value kind %v", v.Kind)
	}
}
