package manifest

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// yamlCodec edits the document tree so comments, key order and quoting of
// untouched fields survive a write.
type yamlCodec struct{}

func (yamlCodec) decode(data []byte, keys Keys) (Data, error) {
	root, err := yamlMapping(data)
	if err != nil {
		return Data{}, err
	}
	if root == nil {
		return Data{}, nil
	}

	var d Data
	if n := yamlValue(root, keys.Version); n != nil {
		if n.Kind != yaml.ScalarNode {
			return Data{}, fmt.Errorf("field %q is not a scalar (line %d)", keys.Version, n.Line)
		}
		d.Version = n.Value
	}
	if n := yamlValue(root, keys.Build); n != nil && n.Kind == yaml.ScalarNode {
		d.Build = n.Value
	}
	return d, nil
}

func (yamlCodec) encode(orig []byte, keys Keys, d Data) ([]byte, error) {
	var doc yaml.Node
	if len(bytes.TrimSpace(orig)) > 0 {
		if err := yaml.Unmarshal(orig, &doc); err != nil {
			return nil, err
		}
	}
	if doc.Kind == 0 {
		doc.Kind = yaml.DocumentNode
	}
	if doc.Kind == yaml.DocumentNode && len(doc.Content) == 0 {
		doc.Content = []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("top level is not a mapping")
	}
	root := doc.Content[0]

	setYAMLScalar(root, keys.Version, d.Version, "!!str")
	if d.Build != "" {
		setYAMLScalar(root, keys.Build, d.Build, "!!int")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// yamlMapping parses data and returns its top-level mapping, or nil for an
// empty document.
func yamlMapping(data []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping (line %d)", root.Line)
	}
	return root, nil
}

// yamlValue returns the value node stored under key in a mapping node.
func yamlValue(mapping *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return mapping.Content[i+1]
		}
	}
	return nil
}

// setYAMLScalar sets key to value. An existing scalar keeps its style and,
// for counters, its tag; a missing key is appended with newTag.
func setYAMLScalar(mapping *yaml.Node, key, value, newTag string) {
	if n := yamlValue(mapping, key); n != nil && n.Kind == yaml.ScalarNode {
		if newTag == "!!str" {
			n.Tag = "!!str"
		}
		n.Value = value
		return
	}

	valueNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: newTag, Value: value}
	if n := yamlValue(mapping, key); n != nil {
		*n = *valueNode
		return
	}
	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		valueNode,
	)
}
