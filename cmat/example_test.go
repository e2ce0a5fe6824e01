package cmat_test

import (
	"fmt"

	"github.com/utkarsh5026/corrmat/cmat"
)

func ExampleNew() {
	data := []float64{
		1, 2, 3, 4, 5,
		2, 4, 6, 8, 10,
		5, 4, 3, 2, 1,
	}

	m, err := cmat.New(data, 3, 5, cmat.WithThreads(1))
	if err != nil {
		panic(err)
	}
	defer m.Close()

	fmt.Println(m.Strategy())
	for st := m.First(); st != cmat.StatusDone; st = m.Next() {
		r, c := m.Position()
		fmt.Printf("(%d,%d) %.2f\n", r, c, m.Value())
	}
	// Output:
	// fully-stored
	// (0,1) 1.00
	// (0,2) -1.00
	// (1,2) -1.00
}
