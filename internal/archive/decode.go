package archive

import (
	"fmt"

	"howett.net/plist"
)

// RawArchive is a decoded keyed-archive property list, before any reference
// resolution. Objects is the flat object table that UIDs index into; Top
// names the root references, conventionally under the key "root".
type RawArchive struct {
	Objects []any
	Top     map[string]any
}

// Decode parses a binary property-list blob into a RawArchive.
//
// A nil or empty blob means the source column was NULL; that is a normal
// state and yields (nil, nil) without attempting a parse. Bytes that do not
// parse as a property list, or parse into something that is not a keyed
// archive, return an error.
func Decode(data []byte) (*RawArchive, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var root map[string]any
	if _, err := plist.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse property list: %w", err)
	}

	objects, ok := root["$objects"].([]any)
	if !ok {
		return nil, fmt.Errorf("not a keyed archive: missing $objects table")
	}
	top, ok := root["$top"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("not a keyed archive: missing $top dictionary")
	}

	return &RawArchive{Objects: objects, Top: top}, nil
}
