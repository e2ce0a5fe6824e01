package cmat

import (
	"errors"
	"fmt"
	"math"
)

// Status is the result of a traversal step.
type Status int

const (
	StatusError Status = -1 // the element at the cursor could not be computed
	StatusDone  Status = 0  // every element has been visited
	StatusOK    Status = 1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDone:
		return "done"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

type iterState int

const (
	iterIdle iterState = iota
	iterActive
	iterDone
)

type cursor[F any] struct {
	row, col int
	value    F
	err      error
	state    iterState
}

// First positions the cursor at (0, 1) and loads its value.
func (m *Matrix[F]) First() Status {
	if m.acc == nil {
		m.cur.err = ErrClosed
		m.cur.state = iterDone
		return StatusError
	}
	m.cur = cursor[F]{row: 0, col: 1, state: iterActive}
	return m.fetch()
}

// Next advances the cursor to the following element of the strict upper
// triangle. Elements are visited row by row within column strips, strips
// from left to right; for OnDemand and FullyStored the single strip spans
// all columns. Next before First starts the traversal. Once StatusDone is
// returned every further call returns it too.
func (m *Matrix[F]) Next() Status {
	switch m.cur.state {
	case iterIdle:
		return m.First()
	case iterDone:
		m.cur.err = nil
		return StatusDone
	}
	if m.acc == nil {
		m.cur.err = ErrClosed
		m.cur.state = iterDone
		return StatusError
	}

	start, end := m.acc.strip(m.cur.col)
	row, col := m.cur.row, m.cur.col+1
	if col >= end {
		col = start
		row++
		if col <= row {
			col = row + 1
		}
		if col >= end {
			row, col = 0, end
			if col >= m.v {
				m.cur.err = nil
				m.cur.state = iterDone
				return StatusDone
			}
		}
	}

	m.cur.row, m.cur.col = row, col
	return m.fetch()
}

func (m *Matrix[F]) fetch() Status {
	v, err := m.acc.cget(m.cur.row, m.cur.col)
	if err == nil && math.IsNaN(float64(v)) {
		err = fmt.Errorf("%w: element (%d,%d) is NaN", ErrNumeric, m.cur.row, m.cur.col)
	}
	if err != nil {
		m.cur.value = F(math.NaN())
		m.cur.err = err
		return StatusError
	}
	m.cur.value = v
	m.cur.err = nil
	return StatusOK
}

// Value returns the element at the cursor, NaN if it could not be computed.
func (m *Matrix[F]) Value() F { return m.cur.value }

// Position returns the row and column of the cursor.
func (m *Matrix[F]) Position() (row, col int) { return m.cur.row, m.cur.col }

// Err returns the error of the last traversal step, nil if it succeeded.
func (m *Matrix[F]) Err() error { return m.cur.err }

// Walk traverses the strict upper triangle in the order of First and Next
// and calls fn for every element until fn returns false. Failed elements
// are passed as NaN; the first failure is returned once the walk ends.
func (m *Matrix[F]) Walk(fn func(row, col int, v F) bool) error {
	var first error
	for st := m.First(); st != StatusDone; st = m.Next() {
		if st == StatusError {
			if errors.Is(m.cur.err, ErrClosed) {
				return ErrClosed
			}
			if first == nil {
				first = m.cur.err
			}
		}
		if !fn(m.cur.row, m.cur.col, m.cur.value) {
			break
		}
	}
	return first
}
