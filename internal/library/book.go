package library

import (
	"encoding/json"
	"log"
	"time"

	"github.com/karaage0703/kindle-analyzer/internal/archive"
)

// Field is one extracted metadata attribute. Value is meaningful only when
// Present; absence distinguishes missing or unparseable metadata from a
// genuinely empty string.
type Field struct {
	Value   string
	Present bool
}

// Or returns the field's value, or fallback when the field is absent.
func (f Field) Or(fallback string) string {
	if !f.Present {
		return fallback
	}
	return f.Value
}

// MarshalJSON encodes absent fields as null.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Present {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Book is one ZBOOK row with its sync metadata flattened into attributes.
type Book struct {
	RowID           int64 `json:"row_id"`
	Title           Field `json:"title"`
	Author          Field `json:"author"`
	Publisher       Field `json:"publisher"`
	ASIN            Field `json:"asin"`
	ContentTag      Field `json:"content_tag"`
	PurchaseDate    Field `json:"purchase_date"`
	PublicationDate Field `json:"publication_date"`

	// Parsed forms of the date attributes, zero when absent or unparseable.
	PurchasedAt time.Time `json:"-"`
	PublishedAt time.Time `json:"-"`
}

// newBook decodes and resolves one row's metadata blob and extracts the
// reporting attributes. Any decode or resolution failure is logged with the
// row id and leaves every attribute absent; a bad row never fails the batch.
func newBook(rowID int64, blob []byte) Book {
	b := Book{RowID: rowID}

	raw, err := archive.Decode(blob)
	if err != nil {
		log.Printf("book %d: decode sync metadata: %v", rowID, err)
		return b
	}
	if raw == nil {
		return b
	}

	tree, err := raw.Resolve()
	if err != nil {
		log.Printf("book %d: resolve sync metadata: %v", rowID, err)
		return b
	}

	b.Title = field(tree, "attributes", "title")
	b.Author = field(tree, "attributes", "authors", "author")
	b.Publisher = field(tree, "attributes", "publishers", "publisher")
	b.ASIN = field(tree, "attributes", "ASIN")
	b.ContentTag = field(tree, "attributes", "content_tags", "tag")
	b.PurchaseDate = field(tree, "attributes", "purchase_date")
	b.PublicationDate = field(tree, "attributes", "publication_date")

	b.PurchasedAt, _ = parseDate(b.PurchaseDate)
	b.PublishedAt, _ = parseDate(b.PublicationDate)

	return b
}

func field(tree archive.Value, path ...string) Field {
	value, ok := archive.Extract(tree, path...)
	return Field{Value: value, Present: ok}
}

// dateLayouts are the timestamp shapes observed in Kindle sync metadata.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05 -0700",
	"2006-01-02",
}

// parseDate parses a date attribute. An absent field or an unrecognized
// layout yields (zero, false), mirroring a coerced-NaT conversion: the row
// keeps its raw string but drops out of date-based aggregations.
func parseDate(f Field) (time.Time, bool) {
	if !f.Present || f.Value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, f.Value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
