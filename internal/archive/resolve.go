package archive

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"howett.net/plist"
)

// Value is a fully resolved archive value: a plist scalar, a []any of Values,
// or a map[any]any of Values. It contains no plist.UID references and no
// "$"-prefixed bookkeeping keys.
type Value = any

// maxResolveDepth bounds recursion. Real sync metadata is a shallow attribute
// dictionary; an archive that nests deeper than this (or contains a reference
// cycle) is treated as malformed rather than allowed to exhaust the stack.
const maxResolveDepth = 512

var errTooDeep = errors.New("resolution exceeded maximum depth (cyclic or malformed archive)")

// containerKind classifies an archived dictionary by its $class tag.
type containerKind int

const (
	plainMapping containerKind = iota
	arrayProxy                 // NSArray / NSMutableArray carrying NS.objects
	dictProxy                  // NSDictionary / NSMutableDictionary carrying NS.keys + NS.objects
)

type resolver struct {
	objects []any
	classes map[uint64]string // object index -> $classname
	memo    map[uint64]Value  // object index -> resolved value, one call's scope
}

// Resolve dereferences the object graph rooted at $top["root"] into a plain
// nested value. Each call builds a fresh class map and memo table; nothing is
// shared across archives.
func (a *RawArchive) Resolve() (Value, error) {
	root, ok := a.Top["root"]
	if !ok {
		return nil, errors.New(`archive $top has no "root" entry`)
	}
	r := &resolver{
		objects: a.Objects,
		classes: classMap(a.Objects),
		memo:    make(map[uint64]Value),
	}
	return r.resolve(root, 0)
}

// classMap scans the object table once, recording the classname of every
// entry that carries one. It is built before resolution starts and only read
// afterwards.
func classMap(objects []any) map[uint64]string {
	classes := make(map[uint64]string)
	for i, obj := range objects {
		m, ok := obj.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["$classname"].(string); ok {
			classes[uint64(i)] = name
		}
	}
	return classes
}

func (r *resolver) resolve(obj any, depth int) (Value, error) {
	if depth > maxResolveDepth {
		return nil, errTooDeep
	}

	switch v := obj.(type) {
	case plist.UID:
		idx := uint64(v)
		if cached, ok := r.memo[idx]; ok {
			return cached, nil
		}
		if idx >= uint64(len(r.objects)) {
			return nil, fmt.Errorf("reference %d out of range (archive has %d objects)", idx, len(r.objects))
		}
		resolved, err := r.resolve(r.objects[idx], depth+1)
		if err != nil {
			return nil, err
		}
		r.memo[idx] = resolved
		return resolved, nil

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			resolved, err := r.resolve(item, depth+1)
			if err != nil {
				return nil, err
			}
			out[i] = resolved
		}
		return out, nil

	case map[string]any:
		return r.resolveMapping(v, depth)

	default:
		return obj, nil
	}
}

// classify reads the dictionary's $class reference through the class map and
// maps the open-ended set of archived class names onto the closed set of
// container shapes the resolver understands. A recognized class name without
// the fields its shape requires falls back to plainMapping.
func (r *resolver) classify(m map[string]any) containerKind {
	ref, ok := m["$class"].(plist.UID)
	if !ok {
		return plainMapping
	}
	switch r.classes[uint64(ref)] {
	case "NSArray", "NSMutableArray":
		if _, ok := m["NS.objects"]; ok {
			return arrayProxy
		}
	case "NSDictionary", "NSMutableDictionary":
		if _, ok := m["NS.keys"]; ok {
			if _, ok := m["NS.objects"]; ok {
				return dictProxy
			}
		}
	}
	return plainMapping
}

func (r *resolver) resolveMapping(m map[string]any, depth int) (Value, error) {
	switch r.classify(m) {
	case arrayProxy:
		// The wrapper is discarded; the archive's NS.objects list is the value.
		return r.resolve(m["NS.objects"], depth+1)

	case dictProxy:
		keys, err := r.resolveList(m["NS.keys"], depth)
		if err != nil {
			return nil, fmt.Errorf("dictionary NS.keys: %w", err)
		}
		vals, err := r.resolveList(m["NS.objects"], depth)
		if err != nil {
			return nil, fmt.Errorf("dictionary NS.objects: %w", err)
		}
		if len(keys) != len(vals) {
			return nil, fmt.Errorf("dictionary has %d keys but %d values", len(keys), len(vals))
		}
		out := make(map[any]any, len(keys))
		for i, k := range keys {
			if !comparableKey(k) {
				return nil, fmt.Errorf("dictionary key %d resolved to unusable type %T", i, k)
			}
			// Later duplicates overwrite earlier ones; pair order carries no meaning.
			out[k] = vals[i]
		}
		return out, nil

	default:
		out := make(map[any]any, len(m))
		for k, v := range m {
			if strings.HasPrefix(k, "$") {
				continue
			}
			resolved, err := r.resolve(v, depth+1)
			if err != nil {
				return nil, err
			}
			out[k] = resolved
		}
		return out, nil
	}
}

// resolveList resolves obj and requires the result to be a list, as the
// NS.keys / NS.objects fields of a dictionary proxy must be.
func (r *resolver) resolveList(obj any, depth int) ([]any, error) {
	resolved, err := r.resolve(obj, depth+1)
	if err != nil {
		return nil, err
	}
	list, ok := resolved.([]any)
	if !ok {
		return nil, fmt.Errorf("resolved to %T, want list", resolved)
	}
	return list, nil
}

// comparableKey reports whether a resolved value can be used as a Go map key.
// Archived dictionary keys are almost always strings; a key that resolves to
// a slice or map has no Go equivalent and fails the row.
func comparableKey(k any) bool {
	if k == nil {
		return true
	}
	return reflect.TypeOf(k).Comparable()
}
