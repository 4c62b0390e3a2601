package model

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// refRoot is the name an example return reference must be rooted at.
const refRoot = "input"

// Path is a dotted reference from an example's input root down to one value,
// e.g. ["log", "message"] for "input.log.message". The full path from the
// root is the only resolution rule; leaf names are never searched for.
type Path []string

// ParseRefPath parses a dotted reference string of the form
// "input.<step>[.<step>...]" into a Path.
func ParseRefPath(raw string) (Path, error) {
	parts := strings.Split(raw, ".")
	if parts[0] != refRoot {
		return nil, fmt.Errorf("reference %q must be rooted at %q", raw, refRoot)
	}
	if len(parts) < 2 {
		return nil, fmt.Errorf("reference %q names no value under %q", raw, refRoot)
	}
	for _, part := range parts[1:] {
		if part == "" {
			return nil, fmt.Errorf("reference %q contains an empty path step", raw)
		}
	}
	return Path(parts[1:]), nil
}

// String renders the path in its declaration form, including the root.
func (p Path) String() string {
	return refRoot + "." + strings.Join(p, ".")
}

// Resolve walks the path through the given input value. It descends through
// object attributes and map keys only; any other shape, a missing member, or
// a null intermediate yields a *BrokenReferenceError.
func (p Path) Resolve(input cty.Value) (cty.Value, error) {
	v := input
	walked := refRoot
	for _, step := range p {
		at := walked + "." + step
		if v.IsNull() {
			return cty.NilVal, &BrokenReferenceError{Ref: p.String(), At: at}
		}
		t := v.Type()
		switch {
		case t.IsObjectType():
			if !t.HasAttribute(step) {
				return cty.NilVal, &BrokenReferenceError{Ref: p.String(), At: at}
			}
			v = v.GetAttr(step)
		case t.IsMapType():
			key := cty.StringVal(step)
			if !v.HasIndex(key).True() {
				return cty.NilVal, &BrokenReferenceError{Ref: p.String(), At: at}
			}
			v = v.Index(key)
		default:
			return cty.NilVal, &BrokenReferenceError{Ref: p.String(), At: at}
		}
		walked = at
	}
	return v, nil
}
