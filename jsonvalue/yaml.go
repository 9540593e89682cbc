package jsonvalue

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// maxAliasDepth bounds alias expansion so a self-referencing anchor cannot recurse forever.
const maxAliasDepth = 64

// NodeError reports a YAML node that has no JSON equivalent.
type NodeError struct {
	Line    int
	Column  int
	Message string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Message)
}

// FromNode converts a decoded YAML node tree into a Value.
//
// JSON is a subset of YAML, so this handles both formats. Mapping keys must be
// scalars. Aliases are expanded and merge keys (<<) are applied. Duplicate
// mapping keys are all recorded on the resulting Object.
func FromNode(node *yaml.Node) (Value, error) {
	c := converter{anchors: make(map[*yaml.Node]Value)}
	return c.convert(node, 0)
}

type converter struct {
	anchors map[*yaml.Node]Value
}

func (c *converter) convert(node *yaml.Node, aliasDepth int) (Value, error) {
	if node == nil || node.Kind == 0 {
		return Value{}, nil
	}
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return Value{}, nil
		}
		return c.convert(node.Content[0], aliasDepth)

	case yaml.AliasNode:
		if aliasDepth >= maxAliasDepth {
			return Value{}, &NodeError{Line: node.Line, Column: node.Column, Message: "alias nesting too deep"}
		}
		if v, ok := c.anchors[node.Alias]; ok {
			return v, nil
		}
		return c.convert(node.Alias, aliasDepth+1)

	case yaml.MappingNode:
		v, err := c.mapping(node, aliasDepth)
		if err != nil {
			return Value{}, err
		}
		c.remember(node, v)
		return v, nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(node.Content))
		for _, child := range node.Content {
			item, err := c.convert(child, aliasDepth)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		v := Value{kind: KindArray, arr: &items}
		c.remember(node, v)
		return v, nil

	case yaml.ScalarNode:
		v, err := scalar(node)
		if err != nil {
			return Value{}, err
		}
		c.remember(node, v)
		return v, nil
	}
	return Value{}, &NodeError{Line: node.Line, Column: node.Column, Message: "unsupported node kind"}
}

// remember caches anchored nodes so every alias shares one Value.
func (c *converter) remember(node *yaml.Node, v Value) {
	if node.Anchor != "" {
		c.anchors[node] = v
	}
}

func (c *converter) mapping(node *yaml.Node, aliasDepth int) (Value, error) {
	obj := NewObject()
	var merges []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return Value{}, &NodeError{Line: keyNode.Line, Column: keyNode.Column, Message: "mapping key must be a scalar"}
		}
		if keyNode.Tag == "!!merge" || (keyNode.Tag == "" && keyNode.Value == "<<") {
			merges = append(merges, valNode)
			continue
		}
		val, err := c.convert(valNode, aliasDepth)
		if err != nil {
			return Value{}, err
		}
		obj.Set(keyNode.Value, val)
	}

	for _, m := range merges {
		src, err := c.convert(m, aliasDepth+1)
		if err != nil {
			return Value{}, err
		}
		var sources []Value
		switch src.Kind() {
		case KindObject:
			sources = []Value{src}
		case KindArray:
			sources = src.Items()
		default:
			return Value{}, &NodeError{Line: m.Line, Column: m.Column, Message: "merge value must be a mapping"}
		}
		for _, s := range sources {
			so := s.Object()
			for _, k := range so.Keys() {
				if !obj.Has(k) {
					obj.Set(k, so.Get(k))
				}
			}
		}
	}
	return ObjectValue(obj), nil
}

func scalar(node *yaml.Node) (Value, error) {
	tag := node.Tag
	if tag == "" || tag == "!" {
		tag = guessTag(node)
	}
	switch tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := parseBool(node.Value)
		if err != nil {
			return Value{}, &NodeError{Line: node.Line, Column: node.Column, Message: err.Error()}
		}
		return Bool(b), nil
	case "!!int", "!!float":
		f, err := parseNumber(node.Value)
		if err != nil {
			return Value{}, &NodeError{Line: node.Line, Column: node.Column, Message: err.Error()}
		}
		return numberWithLiteral(f, node.Value), nil
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		return String(node.Value), nil
	}
}

func guessTag(node *yaml.Node) string {
	if node.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
		return "!!str"
	}
	switch node.Value {
	case "", "~", "null", "Null", "NULL":
		return "!!null"
	case "true", "True", "TRUE", "false", "False", "FALSE":
		return "!!bool"
	}
	if _, err := parseNumber(node.Value); err == nil {
		return "!!float"
	}
	return "!!str"
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "y":
		return true, nil
	case "false", "no", "off", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}

func parseNumber(s string) (float64, error) {
	clean := strings.ReplaceAll(s, "_", "")
	switch strings.ToLower(clean) {
	case ".nan":
		return math.NaN(), nil
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	}
	if i, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return float64(i), nil
	}
	if strings.HasPrefix(clean, "0o") || strings.HasPrefix(clean, "0O") {
		if i, err := strconv.ParseInt(clean[2:], 8, 64); err == nil {
			return float64(i), nil
		}
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// ToNode converts v back into a YAML node tree with member order preserved.
func ToNode(v Value) *yaml.Node {
	switch v.kind {
	case KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range v.obj.Keys() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				ToNode(v.obj.Get(k)))
		}
		return n
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.Items() {
			n.Content = append(n.Content, ToNode(item))
		}
		return n
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case KindNumber:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: numberTag(v), Value: v.numberText()}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.lit}
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

func numberTag(v Value) string {
	if v.lit != "" {
		if _, err := strconv.ParseInt(strings.ReplaceAll(v.lit, "_", ""), 0, 64); err == nil {
			return "!!int"
		}
		return "!!float"
	}
	if v.num == math.Trunc(v.num) && math.Abs(v.num) < 1<<53 {
		return "!!int"
	}
	return "!!float"
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return ToNode(v), nil
}

// Decode parses JSON or YAML text into a Value.
func Decode(data []byte) (Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return Value{}, err
	}
	return FromNode(&node)
}
