// Package chart recognises chart payloads in model output.
//
// The wire shape is the one the analyst prompt asks for:
//
//	{
//	  "comment": "Here is a bar chart ...",
//	  "chart_details": {"type": "bar", "x_col": "region", "y_col": "total_revenue", "title": "..."},
//	  "data": [{"region": "North", "total_revenue": 867.5}]
//	}
//
// Pie charts use names_col/values_col instead of x_col/y_col.
package chart

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindBar Kind = "bar"
	KindPie Kind = "pie"
)

// DefaultComment is shown when a chart payload carries no comment of its own.
const DefaultComment = "Here is the chart you requested."

// Row is one flat record of chart data.
type Row map[string]interface{}

// Spec is a validated chart. It marshals to and from the wire shape above,
// minus the comment.
type Spec struct {
	Kind          Kind
	CategoryField string
	ValueField    string
	Title         string
	Rows          []Row
}

type details struct {
	Type      string `json:"type"`
	XCol      string `json:"x_col,omitempty"`
	YCol      string `json:"y_col,omitempty"`
	NamesCol  string `json:"names_col,omitempty"`
	ValuesCol string `json:"values_col,omitempty"`
	Title     string `json:"title"`
}

type payload struct {
	Comment      json.RawMessage `json:"comment,omitempty"`
	ChartDetails json.RawMessage `json:"chart_details"`
	Data         json.RawMessage `json:"data"`
}

var (
	errNotChart     = errors.New("object is not a chart payload")
	errUnknownKind  = errors.New("unknown chart type")
	errMissingField = errors.New("chart field missing")
)

func (s Spec) MarshalJSON() ([]byte, error) {
	d := details{Type: string(s.Kind), Title: s.Title}
	switch s.Kind {
	case KindBar:
		d.XCol, d.YCol = s.CategoryField, s.ValueField
	case KindPie:
		d.NamesCol, d.ValuesCol = s.CategoryField, s.ValueField
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownKind, s.Kind)
	}

	rows := s.Rows
	if rows == nil {
		rows = []Row{}
	}
	return json.Marshal(struct {
		ChartDetails details `json:"chart_details"`
		Data         []Row   `json:"data"`
	}{d, rows})
}

func (s *Spec) UnmarshalJSON(data []byte) error {
	spec, _, err := parse(data)
	if err != nil {
		return err
	}
	*s = *spec
	return nil
}

// parse validates one JSON object as a chart payload and returns the chart
// together with its comment (empty when absent).
func parse(raw []byte) (*Spec, string, error) {
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, "", err
	}
	if !isJSONObject(p.ChartDetails) || !isJSONArray(p.Data) {
		return nil, "", errNotChart
	}

	var d details
	if err := json.Unmarshal(p.ChartDetails, &d); err != nil {
		return nil, "", fmt.Errorf("chart_details: %w", err)
	}

	var rows []Row
	if err := json.Unmarshal(p.Data, &rows); err != nil {
		return nil, "", fmt.Errorf("data: %w", err)
	}

	spec := &Spec{Title: d.Title, Rows: rows}
	switch Kind(strings.ToLower(strings.TrimSpace(d.Type))) {
	case KindBar:
		spec.Kind, spec.CategoryField, spec.ValueField = KindBar, d.XCol, d.YCol
	case KindPie:
		spec.Kind, spec.CategoryField, spec.ValueField = KindPie, d.NamesCol, d.ValuesCol
	default:
		return nil, "", fmt.Errorf("%w: %q", errUnknownKind, d.Type)
	}

	if spec.CategoryField == "" || spec.ValueField == "" {
		return nil, "", fmt.Errorf("%w: %s chart needs both axis fields", errMissingField, spec.Kind)
	}
	for i, row := range rows {
		if row == nil {
			return nil, "", fmt.Errorf("%w: row %d is null", errMissingField, i)
		}
		if _, ok := row[spec.CategoryField]; !ok {
			return nil, "", fmt.Errorf("%w: row %d has no %q", errMissingField, i, spec.CategoryField)
		}
		if _, ok := row[spec.ValueField]; !ok {
			return nil, "", fmt.Errorf("%w: row %d has no %q", errMissingField, i, spec.ValueField)
		}
	}

	var comment string
	if len(p.Comment) > 0 {
		_ = json.Unmarshal(p.Comment, &comment)
	}
	return spec, strings.TrimSpace(comment), nil
}

func isJSONObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}
