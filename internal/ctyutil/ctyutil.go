// Package ctyutil bridges between cty values and plain Go values.
//
// Declarations arrive from two directions: HCL expressions evaluate directly
// to cty.Value, while YAML documents decode to interface{} trees. Everything
// downstream (path resolution, comparison, reporting) works on cty.Value, so
// this package owns the conversion in both directions.
package ctyutil

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/zclconf/go-cty/cty"
)

// FromNative converts a plain Go value tree (as produced by the yaml or json
// decoders) into a cty.Value. Mappings become objects, sequences become
// tuples, nil becomes a null of the dynamic pseudo-type.
func FromNative(v any) (cty.Value, error) {
	switch v := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case bool:
		return cty.BoolVal(v), nil
	case string:
		return cty.StringVal(v), nil
	case int:
		return cty.NumberIntVal(int64(v)), nil
	case int64:
		return cty.NumberIntVal(v), nil
	case uint64:
		return cty.NumberUIntVal(v), nil
	case float64:
		return cty.NumberFloatVal(v), nil
	case time.Time:
		// The yaml decoder resolves untagged timestamp scalars to
		// time.Time. The value model has no dedicated time type, so
		// timestamps travel as RFC 3339 strings.
		return cty.StringVal(v.Format(time.RFC3339Nano)), nil
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(v))
		for i, raw := range v {
			elem, err := FromNative(raw)
			if err != nil {
				return cty.NilVal, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, elem)
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(v))
		for key, raw := range v {
			attr, err := FromNative(raw)
			if err != nil {
				return cty.NilVal, fmt.Errorf("key %q: %w", key, err)
			}
			attrs[key] = attr
		}
		return cty.ObjectVal(attrs), nil
	default:
		return cty.NilVal, fmt.Errorf("unsupported value of type %T", v)
	}
}

// ToNative converts a cty.Value into a plain Go value tree. Numbers become
// int64 when they are exactly representable as one, float64 otherwise, so
// that diff output reads naturally.
func ToNative(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString()
	case t == cty.Bool:
		return v.True()
	case t == cty.Number:
		bf := v.AsBigFloat()
		if i, acc := bf.Int64(); acc == big.Exact {
			return i
		}
		f, _ := bf.Float64()
		return f
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out = append(out, ToNative(elem))
		}
		return out
	case t.IsObjectType() || t.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for key, attr := range Attributes(v) {
			out[key] = ToNative(attr)
		}
		return out
	default:
		return v.GoString()
	}
}

// Attributes returns the named members of an object or map value. The caller
// owns the returned map.
func Attributes(v cty.Value) map[string]cty.Value {
	t := v.Type()
	switch {
	case t.IsObjectType():
		attrTypes := t.AttributeTypes()
		out := make(map[string]cty.Value, len(attrTypes))
		for name := range attrTypes {
			out[name] = v.GetAttr(name)
		}
		return out
	case t.IsMapType():
		out := make(map[string]cty.Value, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			out[key.AsString()] = elem
		}
		return out
	default:
		return nil
	}
}

// AttributeNames returns the sorted member names of an object or map value.
func AttributeNames(v cty.Value) []string {
	attrs := Attributes(v)
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
