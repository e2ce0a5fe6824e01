package cmat

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// Show writes the whole matrix as a table, reading every element with Get.
// Meant for debugging small matrices.
func (m *Matrix[F]) Show(w io.Writer) error {
	if m.acc == nil {
		return ErrClosed
	}

	header := make([]any, 0, m.v+1)
	header = append(header, "")
	for j := range m.v {
		header = append(header, strconv.Itoa(j))
	}

	table := tablewriter.NewWriter(w)
	table.Header(header...)

	row := make([]any, m.v+1)
	for i := range m.v {
		row[0] = strconv.Itoa(i)
		for j := range m.v {
			row[j+1] = fmt.Sprintf("%-8.3g", float64(m.Get(i, j)))
		}
		if err := table.Append(row...); err != nil {
			return fmt.Errorf("show row %d: %w", i, err)
		}
	}
	return table.Render()
}
