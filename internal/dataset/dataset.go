// Package dataset loads V×T sample tables: one row per series, one column
// per sample.
package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/utkarsh5026/corrmat/internal/kernel"
)

var (
	ErrEmpty  = errors.New("no samples")
	ErrRagged = errors.New("rows differ in length")
)

// Format of a sample file.
type Format int

const (
	CSV Format = iota
	Whitespace
)

// FormatFor guesses the format from a file name: .csv is CSV, anything
// else is whitespace separated.
func FormatFor(name string) Format {
	if strings.HasSuffix(strings.ToLower(name), ".csv") {
		return CSV
	}
	return Whitespace
}

// Table is a row-major V×T sample table.
type Table struct {
	V, T int
	Data []float64
}

// Row returns the samples of series i.
func (t *Table) Row(i int) []float64 {
	return t.Data[i*t.T : (i+1)*t.T]
}

// Read parses a table. Lines starting with '#' are ignored; with header
// set, the first record is skipped.
func Read(r io.Reader, format Format, header bool) (*Table, error) {
	var (
		records [][]string
		err     error
	)
	if format == CSV {
		records, err = readCSV(r)
	} else {
		records, err = readFields(r)
	}
	if err != nil {
		return nil, err
	}
	if header && len(records) > 0 {
		records = records[1:]
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, ErrEmpty
	}

	tab := &Table{V: len(records), T: len(records[0])}
	tab.Data = make([]float64, 0, tab.V*tab.T)
	for i, rec := range records {
		if len(rec) != tab.T {
			return nil, fmt.Errorf("%w: row %d has %d samples, row 0 has %d", ErrRagged, i, len(rec), tab.T)
		}
		for j, s := range rec {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d sample %d: %w", i, j, err)
			}
			tab.Data = append(tab.Data, f)
		}
	}
	return tab, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}

func readFields(r io.Reader) ([][]string, error) {
	var records [][]string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		records = append(records, strings.Fields(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return records, nil
}

// Synthetic generates v series of t samples that share one common factor,
// so any two series correlate at about rho (0 <= rho < 1).
func Synthetic(v, t int, rho float64, seed int64) *Table {
	rng := rand.New(rand.NewSource(seed))
	common := make([]float64, t)
	for k := range common {
		common[k] = rng.NormFloat64()
	}

	a := math.Sqrt(max(rho, 0))
	b := math.Sqrt(max(1-rho, 0))
	tab := &Table{V: v, T: t, Data: make([]float64, v*t)}
	for i := range v {
		row := tab.Row(i)
		for k := range row {
			row[k] = a*common[k] + b*rng.NormFloat64()
		}
	}
	return tab
}

// Samples converts the table to the element type of a matrix.
func Samples[F kernel.Float](t *Table) []F {
	out := make([]F, len(t.Data))
	for i, d := range t.Data {
		out[i] = F(d)
	}
	return out
}
