package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Well-known table row fields. Rows may carry arbitrary extra fields beyond
// these; the backend decides.
const (
	FieldLocation = "final_location"
	FieldYear     = "year"
	FieldMetric   = "metric_value"
	FieldUnits    = "total_units"
	FieldSales    = "total_sales"
)

// ChartType selects the rendering strategy for a chart. It never changes the
// data shape.
type ChartType string

const (
	ChartLine ChartType = "line"
	ChartBar  ChartType = "bar"
)

// Dataset is one named series. A nil element is an absent value, which is
// distinct from zero and must stay absent through every projection.
type Dataset struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
}

// ChartData is the chart-ready projection of a result set.
type ChartData struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// ValueKind enumerates the closed set of semantic cell types.
type ValueKind int

const (
	Null ValueKind = iota
	Text
	Number
)

// Value is a single table cell: text, number, or null.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// TextValue returns a text cell.
func TextValue(s string) Value { return Value{Kind: Text, Str: s} }

// NumberValue returns a numeric cell.
func NumberValue(n float64) Value { return Value{Kind: Number, Num: n} }

// NullValue returns a null cell.
func NullValue() Value { return Value{Kind: Null} }

// Row is an open record: a set of named cells that remembers the order in
// which fields first appeared. Field order of the first row defines the
// column order of the CSV export, so decoding must not lose it.
type Row struct {
	fields []string
	cells  map[string]Value
}

// NewRow returns an empty row.
func NewRow() Row {
	return Row{cells: make(map[string]Value)}
}

// Set stores a cell, registering the field name on first use.
func (r *Row) Set(name string, v Value) {
	if r.cells == nil {
		r.cells = make(map[string]Value)
	}
	if _, ok := r.cells[name]; !ok {
		r.fields = append(r.fields, name)
	}
	r.cells[name] = v
}

// Get returns the cell for a field and whether the field exists.
func (r Row) Get(name string) (Value, bool) {
	v, ok := r.cells[name]
	return v, ok
}

// Fields returns the field names in first-appearance order.
func (r Row) Fields() []string {
	out := make([]string, len(r.fields))
	copy(out, r.fields)
	return out
}

// Len returns the number of fields in the row.
func (r Row) Len() int { return len(r.fields) }

// UnmarshalJSON decodes a JSON object while preserving key order. Cell values
// outside the text/number/null set are rejected.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("table row: expected object, got %v", tok)
	}

	*r = NewRow()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		switch v := valTok.(type) {
		case nil:
			r.Set(key, NullValue())
		case string:
			r.Set(key, TextValue(v))
		case json.Number:
			n, err := v.Float64()
			if err != nil {
				return fmt.Errorf("table row field %q: %w", key, err)
			}
			r.Set(key, NumberValue(n))
		default:
			return fmt.Errorf("table row field %q: unsupported value type %T", key, valTok)
		}
	}

	_, err = dec.Token() // closing brace
	return err
}

// MarshalJSON encodes the row with fields in first-appearance order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		switch v := r.cells[name]; v.Kind {
		case Null:
			buf.WriteString("null")
		case Text:
			s, err := json.Marshal(v.Str)
			if err != nil {
				return nil, err
			}
			buf.Write(s)
		case Number:
			s, err := json.Marshal(v.Num)
			if err != nil {
				return nil, err
			}
			buf.Write(s)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Response is the structured payload returned by the analysis service.
type Response struct {
	Summary   string    `json:"summary"`
	ChartData ChartData `json:"chart_data"`
	TableData []Row     `json:"table_data"`
	ChartType ChartType `json:"chart_type"`
}

// Decode parses and validates an analysis response body. Any shape violation
// is reported as ErrSchema. Pointer fields distinguish sections that are
// absent from sections that are merely empty; both chart_data and table_data
// must be present.
func Decode(rd io.Reader) (*Response, error) {
	var body struct {
		Summary   string     `json:"summary"`
		ChartData *ChartData `json:"chart_data"`
		TableData *[]Row     `json:"table_data"`
		ChartType ChartType  `json:"chart_type"`
	}
	if err := json.NewDecoder(rd).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if body.ChartData == nil {
		return nil, fmt.Errorf("%w: missing chart_data", ErrSchema)
	}
	if body.TableData == nil {
		return nil, fmt.Errorf("%w: missing table_data", ErrSchema)
	}

	resp := Response{
		Summary:   body.Summary,
		ChartData: *body.ChartData,
		TableData: *body.TableData,
		ChartType: body.ChartType,
	}
	if err := resp.Validate(); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Validate checks the cross-field invariants of the schema: a known chart
// type, a summary, and dataset lengths equal to the label count.
func (r *Response) Validate() error {
	if r.Summary == "" {
		return fmt.Errorf("%w: missing summary", ErrSchema)
	}
	switch r.ChartType {
	case ChartLine, ChartBar:
	default:
		return fmt.Errorf("%w: unknown chart_type %q", ErrSchema, r.ChartType)
	}
	for _, ds := range r.ChartData.Datasets {
		if len(ds.Data) != len(r.ChartData.Labels) {
			return fmt.Errorf("%w: dataset %q has %d values for %d labels",
				ErrSchema, ds.Label, len(ds.Data), len(r.ChartData.Labels))
		}
	}
	return nil
}
