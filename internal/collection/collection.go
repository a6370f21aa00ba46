package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"tc-batch/internal/ir"
)

var ErrParse = errors.New("collection parse error")

// Marshal renders the collection document. Field order is fixed by the
// struct definitions, so a given Collection value always produces the
// same bytes.
func Marshal(c *ir.Collection) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode collection: %w", err)
	}
	return buf.Bytes(), nil
}

func Write(w io.Writer, c *ir.Collection) error {
	b, err := Marshal(c)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Parse decodes a collection document, rejecting any document missing the
// required top-level fields.
func Parse(b []byte) (*ir.Collection, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(b, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	for _, field := range []string{"version", "name", "type", "items"} {
		if _, ok := top[field]; !ok {
			return nil, fmt.Errorf("%w: missing required field %q", ErrParse, field)
		}
	}

	var c ir.Collection
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &c, nil
}

// Report is the outcome of validating a collection document.
type Report struct {
	Name     string   `json:"name"`
	Items    int      `json:"items"`
	Defects  []string `json:"defects,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func (r *Report) Valid() bool { return len(r.Defects) == 0 }

// Validate parses a document and checks its shape: top-level fields
// present, every item carrying a name, method and url. The file is never
// mutated.
func Validate(b []byte) (*Report, error) {
	c, err := Parse(b)
	if err != nil {
		return nil, err
	}

	rep := &Report{Name: c.Name, Items: len(c.Items)}
	if c.Type != ir.CollectionType {
		rep.Defects = append(rep.Defects, fmt.Sprintf("type is %q, want %q", c.Type, ir.CollectionType))
	}
	for i, it := range c.Items {
		if it.Name == "" {
			rep.Defects = append(rep.Defects, fmt.Sprintf("items[%d]: missing name", i))
		}
		if it.Method == "" {
			rep.Defects = append(rep.Defects, fmt.Sprintf("items[%d]: missing method", i))
		}
		if it.URL == "" {
			rep.Defects = append(rep.Defects, fmt.Sprintf("items[%d]: missing url", i))
		}
	}
	if len(c.Items) == 0 {
		rep.Warnings = append(rep.Warnings, "collection contains no requests")
	}
	return rep, nil
}
