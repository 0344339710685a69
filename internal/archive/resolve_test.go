package archive

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"howett.net/plist"
)

// rawArchive builds a RawArchive rooted at objects[0].
func rawArchive(objects ...any) *RawArchive {
	return &RawArchive{
		Objects: objects,
		Top:     map[string]any{"root": plist.UID(0)},
	}
}

func mustResolve(t *testing.T, a *RawArchive) Value {
	t.Helper()
	tree, err := a.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return tree
}

func TestResolve_PlainMappingStripsBookkeepingKeys(t *testing.T) {
	a := rawArchive(
		map[string]any{
			"$class": plist.UID(2),
			"title":  plist.UID(1),
			"pages":  uint64(320),
		},
		"A Book",
		map[string]any{"$classname": "BookMetadata"},
	)

	want := map[any]any{
		"title": "A Book",
		"pages": uint64(320),
	}
	if diff := cmp.Diff(want, mustResolve(t, a)); diff != "" {
		t.Errorf("resolved tree mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ArrayProxyDiscardsWrapper(t *testing.T) {
	for _, class := range []string{"NSArray", "NSMutableArray"} {
		t.Run(class, func(t *testing.T) {
			a := rawArchive(
				map[string]any{
					"$class":     plist.UID(1),
					"NS.objects": []any{plist.UID(2), plist.UID(3)},
				},
				map[string]any{"$classname": class},
				"first",
				"second",
			)

			want := []any{"first", "second"}
			if diff := cmp.Diff(want, mustResolve(t, a)); diff != "" {
				t.Errorf("resolved list mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestResolve_DictProxyPairsKeysWithValues(t *testing.T) {
	a := rawArchive(
		map[string]any{
			"$class":     plist.UID(1),
			"NS.keys":    []any{plist.UID(2), plist.UID(3)},
			"NS.objects": []any{plist.UID(4), plist.UID(5)},
		},
		map[string]any{"$classname": "NSMutableDictionary"},
		"author",
		"publisher",
		"Jane Doe",
		"Example Press",
	)

	want := map[any]any{
		"author":    "Jane Doe",
		"publisher": "Example Press",
	}
	if diff := cmp.Diff(want, mustResolve(t, a)); diff != "" {
		t.Errorf("resolved dictionary mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_DictProxyDuplicateKeyLastWins(t *testing.T) {
	a := rawArchive(
		map[string]any{
			"$class":     plist.UID(1),
			"NS.keys":    []any{plist.UID(2), plist.UID(2)},
			"NS.objects": []any{plist.UID(3), plist.UID(4)},
		},
		map[string]any{"$classname": "NSDictionary"},
		"author",
		"First Value",
		"Second Value",
	)

	tree := mustResolve(t, a)
	m, ok := tree.(map[any]any)
	if !ok {
		t.Fatalf("resolved to %T, want map", tree)
	}
	if len(m) != 1 {
		t.Fatalf("duplicate key produced %d entries, want 1", len(m))
	}
	if got := m["author"]; got != "Second Value" {
		t.Errorf(`m["author"] = %v, want "Second Value"`, got)
	}
}

func TestResolve_DictProxyWithoutFieldsIsPlainMapping(t *testing.T) {
	// A dictionary classed NSDictionary but missing NS.keys/NS.objects falls
	// through to the plain-mapping rules.
	a := rawArchive(
		map[string]any{
			"$class": plist.UID(1),
			"note":   plist.UID(2),
		},
		map[string]any{"$classname": "NSDictionary"},
		"kept",
	)

	want := map[any]any{"note": "kept"}
	if diff := cmp.Diff(want, mustResolve(t, a)); diff != "" {
		t.Errorf("resolved tree mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_AliasedReferencesShareOneResolution(t *testing.T) {
	a := rawArchive(
		map[string]any{
			"$class": plist.UID(3),
			"first":  plist.UID(1),
			"second": plist.UID(1),
			"third":  plist.UID(2),
		},
		"shared",
		[]any{plist.UID(1), plist.UID(1)},
		map[string]any{"$classname": "BookMetadata"},
	)

	want := map[any]any{
		"first":  "shared",
		"second": "shared",
		"third":  []any{"shared", "shared"},
	}
	if diff := cmp.Diff(want, mustResolve(t, a)); diff != "" {
		t.Errorf("resolved tree mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_ReferenceOutOfRange(t *testing.T) {
	a := rawArchive(map[string]any{"broken": plist.UID(99)})
	if _, err := a.Resolve(); err == nil {
		t.Fatal("Resolve accepted an out-of-range reference")
	}
}

func TestResolve_MissingRootEntry(t *testing.T) {
	a := &RawArchive{
		Objects: []any{"$null"},
		Top:     map[string]any{},
	}
	if _, err := a.Resolve(); err == nil {
		t.Fatal("Resolve accepted an archive without $top root")
	}
}

func TestResolve_CycleFailsClosed(t *testing.T) {
	// objects[0] references itself; the depth bound must convert the cycle
	// into an error rather than unbounded recursion.
	a := rawArchive(map[string]any{"self": plist.UID(0)})
	if _, err := a.Resolve(); err == nil {
		t.Fatal("Resolve terminated on a cyclic archive without error")
	}
}

func TestResolve_DeepNestingFailsClosed(t *testing.T) {
	// A chain of references longer than the depth bound.
	objects := make([]any, maxResolveDepth+2)
	for i := 0; i < len(objects)-1; i++ {
		objects[i] = plist.UID(uint64(i + 1))
	}
	objects[len(objects)-1] = "bottom"

	a := rawArchive(objects...)
	if _, err := a.Resolve(); err == nil {
		t.Fatal("Resolve accepted an archive nested beyond the depth bound")
	}
}

func TestResolve_Idempotent(t *testing.T) {
	a := rawArchive(
		map[string]any{
			"$class":     plist.UID(1),
			"NS.keys":    []any{plist.UID(2)},
			"NS.objects": []any{plist.UID(3)},
		},
		map[string]any{"$classname": "NSDictionary"},
		"tags",
		[]any{plist.UID(4), plist.UID(5)},
		"novel",
		"comic",
	)

	first := mustResolve(t, a)
	second := mustResolve(t, a)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated resolution differs (-first +second):\n%s", diff)
	}
}

func TestResolve_EndToEndMinimalArchive(t *testing.T) {
	// The canonical minimal archive: a dictionary proxy mapping "author" to
	// "Jane Doe", round-tripped through the binary plist encoding.
	data := marshalArchive(t,
		[]any{
			map[string]any{
				"$class":     plist.UID(1),
				"NS.keys":    []any{plist.UID(2)},
				"NS.objects": []any{plist.UID(3)},
			},
			map[string]any{"$classname": "NSDictionary"},
			"author",
			"Jane Doe",
		},
		map[string]any{"root": plist.UID(0)},
	)

	raw, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tree, err := raw.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	want := map[any]any{"author": "Jane Doe"}
	if diff := cmp.Diff(want, tree); diff != "" {
		t.Errorf("resolved tree mismatch (-want +got):\n%s", diff)
	}

	got, ok := Extract(tree, "author")
	if !ok {
		t.Fatal(`Extract(tree, "author") reported absent`)
	}
	if got != "Jane Doe" {
		t.Errorf(`Extract(tree, "author") = %q, want "Jane Doe"`, got)
	}
}
