package archive

import (
	"testing"
	"time"
)

func TestExtract(t *testing.T) {
	tree := map[any]any{
		"attributes": map[any]any{
			"title": "A Book",
			"authors": map[any]any{
				"author": []any{"Jane Doe", "John Roe"},
			},
			"purchase_date": "2021-03-04T05:06:07Z",
			"pages":         uint64(320),
			"rating":        4.5,
			"sample":        false,
		},
	}

	tests := []struct {
		name   string
		tree   Value
		path   []string
		want   string
		wantOK bool
	}{
		{
			name:   "scalar string",
			tree:   tree,
			path:   []string{"attributes", "title"},
			want:   "A Book",
			wantOK: true,
		},
		{
			name:   "list flattened with separator",
			tree:   tree,
			path:   []string{"attributes", "authors", "author"},
			want:   "Jane Doe, John Roe",
			wantOK: true,
		},
		{
			name:   "integer stringified",
			tree:   tree,
			path:   []string{"attributes", "pages"},
			want:   "320",
			wantOK: true,
		},
		{
			name:   "float stringified",
			tree:   tree,
			path:   []string{"attributes", "rating"},
			want:   "4.5",
			wantOK: true,
		},
		{
			name:   "bool stringified",
			tree:   tree,
			path:   []string{"attributes", "sample"},
			want:   "false",
			wantOK: true,
		},
		{
			name: "missing first key",
			tree: tree,
			path: []string{"nope"},
		},
		{
			name: "missing nested key",
			tree: tree,
			path: []string{"attributes", "publishers", "publisher"},
		},
		{
			name: "path descends into scalar",
			tree: tree,
			path: []string{"attributes", "title", "deeper"},
		},
		{
			name: "absent tree",
			tree: nil,
			path: []string{"attributes"},
		},
		{
			name: "scalar tree",
			tree: "just a string",
			path: []string{"attributes"},
		},
		{
			name: "list tree",
			tree: []any{"a", "b"},
			path: []string{"attributes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.tree, tt.path...)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%v) ok = %v, want %v", tt.path, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Extract(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestExtract_TimeFormatsAsRFC3339(t *testing.T) {
	ts := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	tree := map[any]any{"purchase_date": ts}

	got, ok := Extract(tree, "purchase_date")
	if !ok {
		t.Fatal("Extract reported absent for present time value")
	}
	if got != "2021-03-04T05:06:07Z" {
		t.Errorf("Extract = %q, want RFC 3339 timestamp", got)
	}
}

func TestExtract_EmptyPathReturnsWholeValue(t *testing.T) {
	got, ok := Extract("scalar")
	if !ok || got != "scalar" {
		t.Errorf("Extract() = (%q, %v), want (\"scalar\", true)", got, ok)
	}
}
