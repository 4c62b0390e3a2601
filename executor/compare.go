package executor

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/fndocs/internal/ctyutil"
)

// Equal compares two values structurally: objects and maps by member name,
// sequences element-wise in order, numbers by arithmetic value (so an
// integer equals its floating representation), strings byte-for-byte.
// Values of incompatible shapes are unequal, never an error.
func Equal(a, b cty.Value) bool {
	if a.IsNull() || b.IsNull() {
		return a.IsNull() && b.IsNull()
	}

	at, bt := a.Type(), b.Type()
	switch {
	case at == cty.String && bt == cty.String:
		return a.AsString() == b.AsString()
	case at == cty.Number && bt == cty.Number:
		return a.AsBigFloat().Cmp(b.AsBigFloat()) == 0
	case at == cty.Bool && bt == cty.Bool:
		return a.True() == b.True()
	case isSequence(at) && isSequence(bt):
		return equalSequences(a, b)
	case isMapping(at) && isMapping(bt):
		return equalMappings(a, b)
	default:
		return false
	}
}

func isSequence(t cty.Type) bool {
	return t.IsTupleType() || t.IsListType() || t.IsSetType()
}

func isMapping(t cty.Type) bool {
	return t.IsObjectType() || t.IsMapType()
}

func equalSequences(a, b cty.Value) bool {
	if a.LengthInt() != b.LengthInt() {
		return false
	}
	ai, bi := a.ElementIterator(), b.ElementIterator()
	for ai.Next() && bi.Next() {
		_, av := ai.Element()
		_, bv := bi.Element()
		if !Equal(av, bv) {
			return false
		}
	}
	return true
}

func equalMappings(a, b cty.Value) bool {
	aAttrs, bAttrs := ctyutil.Attributes(a), ctyutil.Attributes(b)
	if len(aAttrs) != len(bAttrs) {
		return false
	}
	for name, av := range aAttrs {
		bv, ok := bAttrs[name]
		if !ok || !Equal(av, bv) {
			return false
		}
	}
	return true
}
