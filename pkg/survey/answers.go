package survey

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// Field names one attribute of a Record.
type Field string

const (
	FieldLabel     Field = "label"
	FieldWidgetKey Field = "widget_key"
	FieldValue     Field = "value"
)

// Record is the persisted state of one question. Value is nil until the
// question has been rendered and always holds the encoded (JSON friendly)
// form of the answer.
type Record struct {
	Label     string `json:"label"`
	WidgetKey string `json:"widget_key"`
	Value     any    `json:"value"`
}

// Answers maps question ids to records. It is owned by a single Survey and
// does no locking: hosts run at most one render pass per session at a time.
type Answers struct {
	records map[string]*Record
}

// NewAnswers returns an empty answer store.
func NewAnswers() *Answers {
	return &Answers{records: map[string]*Record{}}
}

// GetOrCreate returns the record for id, creating an empty one if needed.
func (a *Answers) GetOrCreate(id string) Record {
	return *a.ensure(id)
}

// Record returns a copy of the record for id without creating it.
func (a *Answers) Record(id string) (Record, bool) {
	rec, ok := a.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Set upserts one field of the record for id. Label and widget key values
// are stored as strings; unknown fields are ignored.
func (a *Answers) Set(id string, field Field, value any) {
	rec := a.ensure(id)
	switch field {
	case FieldLabel:
		rec.Label = stringify(value)
	case FieldWidgetKey:
		rec.WidgetKey = stringify(value)
	case FieldValue:
		rec.Value = value
	}
}

// Get reads one field of the record for id, returning nil when the record
// does not exist.
func (a *Answers) Get(id string, field Field) any {
	rec, ok := a.records[id]
	if !ok {
		return nil
	}
	switch field {
	case FieldLabel:
		return rec.Label
	case FieldWidgetKey:
		return rec.WidgetKey
	case FieldValue:
		return rec.Value
	default:
		return nil
	}
}

// IDs returns the known question ids in lexical order.
func (a *Answers) IDs() []string {
	ids := make([]string, 0, len(a.records))
	for id := range a.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of records.
func (a *Answers) Len() int {
	return len(a.records)
}

// Values returns the encoded value of every record keyed by id.
func (a *Answers) Values() map[string]any {
	out := make(map[string]any, len(a.records))
	for id, rec := range a.records {
		out[id] = rec.Value
	}
	return out
}

// Export serializes every record as a JSON object keyed by question id.
func (a *Answers) Export() ([]byte, error) {
	snapshot := make(map[string]Record, len(a.records))
	for id, rec := range a.records {
		snapshot[id] = *rec
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(snapshot); err != nil {
		return nil, fmt.Errorf("survey: export: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalJSON implements json.Marshaler using Export.
func (a *Answers) MarshalJSON() ([]byte, error) {
	return a.Export()
}

// Import replaces every record with the contents of data. On error the store
// is left untouched.
func (a *Answers) Import(data []byte) error {
	records, err := decodeRecords(data)
	if err != nil {
		return err
	}
	a.records = records
	return nil
}

func (a *Answers) ensure(id string) *Record {
	if a.records == nil {
		a.records = map[string]*Record{}
	}
	rec, ok := a.records[id]
	if !ok {
		rec = &Record{}
		a.records[id] = rec
	}
	return rec
}

func decodeRecords(data []byte) (map[string]*Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &ParseError{Err: errors.New("payload must be a JSON object")}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, &ParseError{Err: err}
	}

	records := make(map[string]*Record, len(raw))
	for id, msg := range raw {
		body := bytes.TrimSpace(msg)
		if len(body) == 0 || body[0] != '{' {
			return nil, &ParseError{ID: id, Err: errors.New("record must be a JSON object")}
		}
		var rec Record
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, &ParseError{ID: id, Err: err}
		}
		records[id] = &rec
	}
	return records, nil
}

func stringify(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}
