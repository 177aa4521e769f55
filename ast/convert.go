// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"slices"
)

// ToValue converts a Go value into a Value. It panics if v cannot be
// converted. The supported types are:
//
//   - nil, which becomes Null
//   - a Value, or a *Member (whose value is used), returned as-is
//   - string, bool, and all the built-in integer and floating-point types
//   - slices and arrays of supported types, which become lists
//   - maps with string keys and values of supported types, which become
//     objects with members in sorted key order
//   - pointers to supported types, with nil pointers becoming Null
func ToValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case Value:
		return t
	case *Member:
		return t.Value
	case string:
		return String(t)
	case []byte:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(t)
	case int8:
		return Int(t)
	case int16:
		return Int(t)
	case int32:
		return Int(t)
	case int64:
		return Int(t)
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(t)
	case uint16:
		return Int(t)
	case uint32:
		return Int(t)
	case uint64:
		return fromUint(t)
	case float32:
		return Float(t)
	case float64:
		return Float(t)
	case []any:
		out := make(List, len(t))
		for i, elt := range t {
			out[i] = ToValue(elt)
		}
		return out
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		out := make(Object, len(keys))
		for i, key := range keys {
			out[i] = &Member{Key: key, Value: ToValue(t[key])}
		}
		return out
	}
	return reflectValue(reflect.ValueOf(v))
}

func fromUint(u uint64) Value {
	if u > math.MaxInt64 {
		return Float(u)
	}
	return Int(u)
}

func reflectValue(rv reflect.Value) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null
		}
		return ToValue(rv.Elem().Interface())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return List{}
		}
		out := make(List, rv.Len())
		for i := range rv.Len() {
			out[i] = ToValue(rv.Index(i).Interface())
		}
		return out

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		})
		out := make(Object, len(keys))
		for i, key := range keys {
			out[i] = &Member{Key: key.String(), Value: ToValue(rv.MapIndex(key).Interface())}
		}
		return out

	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return fromUint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	}
	panic(fmt.Sprintf("cannot convert %T to a value", rv.Interface()))
}

// Native converts v into plain Go values: an object becomes a
// map[string]any, a list or table becomes a []any, and scalars become
// string, int64, float64, bool, or nil. When an object has duplicate keys,
// the first is kept, matching the behavior of Get.
func Native(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			if _, ok := out[m.Key]; !ok {
				out[m.Key] = Native(m.Value)
			}
		}
		return out
	case List:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = Native(elt)
		}
		return out
	case *Table:
		return Native(t.List())
	case String:
		return string(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case Bool:
		return bool(t)
	}
	return nil // null
}
