package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FormatValue renders an attribute value the way it is displayed in
// "key=value" chips.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case []any:
		parts := make([]string, 0, len(x))
		for _, item := range x {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, "|")
	default:
		return fmt.Sprint(x)
	}
}

// eachMember walks a JSON object in document order.
func eachMember(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}

func (p *Params) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*p = nil
		return nil
	}
	out := Params{}
	err := eachMember(data, func(key string, raw json.RawMessage) error {
		var spec ParamSpec
		if err := json.Unmarshal(raw, &spec); err != nil {
			return fmt.Errorf("parameter %q: %w", key, err)
		}
		out = append(out, Param{Name: key, Spec: spec})
		return nil
	})
	if err != nil {
		return err
	}
	*p = out
	return nil
}

func (p Params) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, param := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(param.Name)
		if err != nil {
			return nil, err
		}
		spec, err := json.Marshal(param.Spec)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(spec)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (a *Attributes) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*a = nil
		return nil
	}
	out := Attributes{}
	err := eachMember(data, func(key string, raw json.RawMessage) error {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out = append(out, Attribute{Key: key, Value: v})
		return nil
	})
	if err != nil {
		return err
	}
	*a = out
	return nil
}

func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, attr := range a {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(attr.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(attr.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func yamlMapping(node *yaml.Node) (bool, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return false, nil
	}
	if node.Kind != yaml.MappingNode {
		return false, fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	return true, nil
}

func (p *Params) UnmarshalYAML(node *yaml.Node) error {
	ok, err := yamlMapping(node)
	if err != nil || !ok {
		*p = nil
		return err
	}
	out := Params{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var spec ParamSpec
		if err := node.Content[i+1].Decode(&spec); err != nil {
			return fmt.Errorf("parameter %q: %w", name, err)
		}
		out = append(out, Param{Name: name, Spec: spec})
	}
	*p = out
	return nil
}

func (a *Attributes) UnmarshalYAML(node *yaml.Node) error {
	ok, err := yamlMapping(node)
	if err != nil || !ok {
		*a = nil
		return err
	}
	out := Attributes{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1]
		var v any
		if err := val.Decode(&v); err != nil {
			return fmt.Errorf("attribute %q: %w", key, err)
		}
		out = append(out, Attribute{Key: key, Value: v})
	}
	*a = out
	return nil
}
