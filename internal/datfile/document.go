// Package datfile reads and writes Lineage 2 client data containers
// (skillgrp.dat, skillname-e.dat) as ordered sequences of text records.
//
// The codec only frames records and applies the version cipher. It never
// looks inside record text; the row grammar belongs to the caller.
package datfile

// Record is one decoded line of a container.
type Record struct {
	// Ordinal is the record position: decode order for existing records,
	// the next free position for appended ones.
	Ordinal int
	Text    string
}

// Document is the decoded form of a container file.
// Records are never edited or reordered; Append is the only mutation.
type Document struct {
	Version string
	Records []Record
}

// Len returns the number of records.
func (d *Document) Len() int { return len(d.Records) }

// Append adds records after the existing ones, in argument order.
func (d *Document) Append(texts ...string) {
	for _, t := range texts {
		d.Records = append(d.Records, Record{Ordinal: len(d.Records), Text: t})
	}
}

// Texts returns record texts in order.
func (d *Document) Texts() []string {
	out := make([]string, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Text
	}
	return out
}
