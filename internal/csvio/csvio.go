// Package csvio reads and writes the transaction CSV exchange format:
//
//	category,description,amount,date,user
//
// where category holds the transaction kind ("expense" or "income"), not a
// category name.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Header is the fixed column order.
var Header = []string{"category", "description", "amount", "date", "user"}

// Row is one raw record. Values are trimmed but otherwise unvalidated.
type Row struct {
	Line        int
	Category    string
	Description string
	Amount      string
	Date        string
	User        string
}

// Reader streams rows, mapping columns by header name so that column order
// and extra columns in the input do not matter.
type Reader struct {
	r     *csv.Reader
	index map[string]int
	line  int
}

// NewReader reads the header row from r.
func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(head))
	for i, h := range head {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, required := range []string{"category", "description", "amount"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("csv header is missing column %q", required)
		}
	}

	return &Reader{r: cr, index: index, line: 1}, nil
}

// Next returns the next row, or io.EOF when the input is exhausted. A
// malformed record yields a non-EOF error; the caller may keep reading.
func (r *Reader) Next() (Row, error) {
	rec, err := r.r.Read()
	r.line++
	if err != nil {
		return Row{Line: r.line}, err
	}
	return Row{
		Line:        r.line,
		Category:    r.field(rec, "category"),
		Description: r.field(rec, "description"),
		Amount:      r.field(rec, "amount"),
		Date:        r.field(rec, "date"),
		User:        r.field(rec, "user"),
	}, nil
}

func (r *Reader) field(rec []string, name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// Writer emits rows in Header order.
type Writer struct {
	w *csv.Writer
}

// NewWriter writes the header row to w.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return &Writer{w: cw}, nil
}

// Write appends one row.
func (w *Writer) Write(row Row) error {
	return w.w.Write([]string{row.Category, row.Description, row.Amount, row.Date, row.User})
}

// Flush writes buffered data and reports any write error.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}
