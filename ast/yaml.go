// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"
	"math"

	"github.com/goccy/go-yaml"
)

// YAML renders v as a YAML document. Object members keep their order.
func YAML(v Value) ([]byte, error) {
	return yaml.MarshalWithOptions(ordered(v), yaml.Indent(2))
}

// ordered converts v to plain Go values like Native, except that objects
// become a yaml.MapSlice so that member order is kept.
func ordered(v Value) any {
	switch t := v.(type) {
	case Object:
		out := make(yaml.MapSlice, len(t))
		for i, m := range t {
			out[i] = yaml.MapItem{Key: m.Key, Value: ordered(m.Value)}
		}
		return out
	case List:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = ordered(elt)
		}
		return out
	case *Table:
		return ordered(t.List())
	case Float:
		if math.IsInf(float64(t), 0) || math.IsNaN(float64(t)) {
			return nil
		}
		return float64(t)
	}
	return Native(v)
}

// FromYAML decodes a YAML or JSON document into a Value. Mappings become
// objects whose members are in document order.
func FromYAML(data []byte) (Value, error) {
	var doc any
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return fromYAML(doc)
}

func fromYAML(v any) (Value, error) {
	switch t := v.(type) {
	case yaml.MapSlice:
		out := make(Object, len(t))
		for i, item := range t {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			val, err := fromYAML(item.Value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[i] = &Member{Key: key, Value: val}
		}
		return out, nil
	case []any:
		out := make(List, len(t))
		for i, elt := range t {
			val, err := fromYAML(elt)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			out[i] = val
		}
		return out, nil
	case nil, string, bool, int, int64, uint64, float64:
		return ToValue(t), nil
	}
	return nil, fmt.Errorf("unsupported YAML value %T", v)
}
