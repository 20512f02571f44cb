// Package export serializes record sets for bulk export and parses them
// back on import. The wire shape is the persisted record shape: a JSON
// array of ApplicationRecord documents, so export then import round-trips
// field-for-field.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mjcarter/shortlist/internal/model"
	"github.com/mjcarter/shortlist/internal/views"
)

// Export writes records to w as an indented JSON array, most recently
// created first. HTML escaping is disabled so documents match the stored
// form byte for byte.
func Export(w io.Writer, records []*model.ApplicationRecord) error {
	sorted := views.SortByFirstEntryDesc(records)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(sorted); err != nil {
		return fmt.Errorf("export records: %w", err)
	}
	return nil
}

// Result is the outcome of an Import.
type Result struct {
	Records []*model.ApplicationRecord
	Dropped []DroppedRecord
}

// DroppedRecord describes one rejected import element.
type DroppedRecord struct {
	Index  int
	Reason string
}

// Import parses a JSON array of records from r. Each element validates
// independently: a record is dropped when its id is not numeric, its
// companyName or jobTitle is not a string, its statusHistory is empty or
// holds a status outside the enumeration, or a timestamp does not parse.
// Invalid records are reported in the result, never fatal to the batch.
func Import(r io.Reader) (Result, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Result{}, fmt.Errorf("import: not a JSON array of records: %w", err)
	}

	res := Result{Records: []*model.ApplicationRecord{}}
	for i, element := range raw {
		rec, err := decodeRecord(element)
		if err != nil {
			res.Dropped = append(res.Dropped, DroppedRecord{Index: i, Reason: err.Error()})
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

// decodeRecord parses and validates one element of the import array.
func decodeRecord(data json.RawMessage) (*model.ApplicationRecord, error) {
	// Unmarshalling enforces the field types: a non-numeric id, a
	// non-string companyName/jobTitle, or an unparsable timestamp all
	// fail here.
	var rec model.ApplicationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("malformed record: %v", err)
	}

	if len(rec.StatusHistory) == 0 {
		return nil, fmt.Errorf("record %d: empty statusHistory", rec.ID)
	}
	for i, e := range rec.StatusHistory {
		if !e.Status.Valid() {
			return nil, fmt.Errorf("record %d: unknown status %q at history index %d", rec.ID, e.Status, i)
		}
		if e.Timestamp.IsZero() {
			return nil, fmt.Errorf("record %d: missing timestamp at history index %d", rec.ID, i)
		}
	}
	return &rec, nil
}
