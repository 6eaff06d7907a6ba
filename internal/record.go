package internal

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/segmentio/encoding/json"
)

// ErrInvalidRecord indicates a data record lacks a usable id or value.
var ErrInvalidRecord = errors.New("invalid data record")

// ErrDuplicateID indicates two data records share the same id.
var ErrDuplicateID = errors.New("duplicate data record id")

// RecordError reports a problem with a single data record.
type RecordError struct {
	Index int    // Position of the record in data.json.
	Field string // The configured field name at fault.
	Err   error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (field %q): %v", e.Index, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// Record is a single data item with arbitrary fields.
type Record map[string]any

// Datum is a Record along with the id, name and value read through the
// configured field names. Callbacks receive a Datum.
type Datum struct {
	Record Record
	ID     string
	Name   string
	Value  float64
}

// ReadRecords decodes a JSON array of objects.
func ReadRecords(reader io.Reader) ([]Record, error) {
	dec := json.NewDecoder(reader)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode records: %w", err)
	}
	records := make([]Record, len(raw))
	for i, r := range raw {
		records[i] = Record(r)
	}
	return records, nil
}

func toRecords(v any) ([]Record, bool) {
	switch rs := v.(type) {
	case []Record:
		return rs, true
	case []map[string]any:
		records := make([]Record, len(rs))
		for i, r := range rs {
			records[i] = Record(r)
		}
		return records, true
	case []Tree:
		records := make([]Record, len(rs))
		for i, r := range rs {
			records[i] = Record(r)
		}
		return records, true
	case []any:
		records := make([]Record, len(rs))
		for i, item := range rs {
			switch r := item.(type) {
			case Record:
				records[i] = r
			case map[string]any:
				records[i] = Record(r)
			case Tree:
				records[i] = Record(r)
			default:
				return nil, false
			}
		}
		return records, true
	}
	return nil, false
}

// buildData resolves the configured fields of every record. Records need a
// non-empty id and a numeric value, and ids must be unique.
func buildData(records []Record, fields DataOptions, logger *log.Logger) ([]Datum, error) {
	data := make([]Datum, 0, len(records))
	seen := make(map[string]int, len(records))

	var errs error
	for i, record := range records {
		raw, ok := record[fields.ID]
		id := ""
		if ok && raw != nil {
			id = fmt.Sprint(raw)
		}
		if id == "" {
			errs = errors.Join(errs, &RecordError{Index: i, Field: fields.ID, Err: ErrInvalidRecord})
			continue
		}
		if first, dup := seen[id]; dup {
			errs = errors.Join(errs, &RecordError{
				Index: i,
				Field: fields.ID,
				Err:   fmt.Errorf("%w: %q already used by record %d", ErrDuplicateID, id, first),
			})
			continue
		}
		seen[id] = i

		value, err := toFloat(record[fields.Value])
		if err == nil && (math.IsNaN(value) || math.IsInf(value, 0)) {
			err = fmt.Errorf("not finite: %v", value)
		}
		if err != nil {
			errs = errors.Join(errs, &RecordError{
				Index: i,
				Field: fields.Value,
				Err:   fmt.Errorf("%w: %v", ErrInvalidRecord, err),
			})
			continue
		}

		name := ""
		if n, ok := record[fields.Name]; ok && n != nil {
			name = fmt.Sprint(n)
		} else {
			logger.Warn("record has no name", "index", i, "id", id, "field", fields.Name)
		}

		data = append(data, Datum{Record: record, ID: id, Name: name, Value: value})
	}
	if errs != nil {
		return nil, errs
	}
	return data, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case nil:
		return 0, errors.New("missing")
	}
	return 0, fmt.Errorf("not a number: %T", v)
}
