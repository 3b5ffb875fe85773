// Package deck holds the ordered slide content of a presentation.
package deck

import "errors"

// ErrEmptyCatalog is returned when a catalog would hold no slides.
var ErrEmptyCatalog = errors.New("deck: catalog must contain at least one slide")

// Record is one slide's literal markdown text.
type Record struct {
	Text string
}

// Catalog is the ordered, non-empty list of records making up a deck.
// The order of the records is the presentation order.
type Catalog struct {
	records []Record
}

// New builds a catalog from records, in the order given.
func New(records ...Record) (Catalog, error) {
	if len(records) == 0 {
		return Catalog{}, ErrEmptyCatalog
	}
	rs := make([]Record, len(records))
	copy(rs, records)
	return Catalog{records: rs}, nil
}

// FromText builds a catalog with one record per text block.
func FromText(texts ...string) (Catalog, error) {
	rs := make([]Record, len(texts))
	for i, t := range texts {
		rs[i] = Record{Text: t}
	}
	return New(rs...)
}

// Records returns the records in presentation order.
func (c Catalog) Records() []Record {
	rs := make([]Record, len(c.records))
	copy(rs, c.records)
	return rs
}

// Len returns the number of records.
func (c Catalog) Len() int { return len(c.records) }

// At returns the record at position i.
func (c Catalog) At(i int) Record { return c.records[i] }
