package main

import (
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/corrmat/cmat"
	"github.com/utkarsh5026/corrmat/internal/dataset"
)

func newGetCmd(load func() (settings, error), logger func() *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "get ROW COL [ROW COL...]",
		Short: "Print single elements",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || len(args)%2 != 0 {
				return fmt.Errorf("expected pairs of indices, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			idx := make([]int, len(args))
			for k, a := range args {
				n, err := strconv.Atoi(a)
				if err != nil {
					return fmt.Errorf("index %q: %w", a, err)
				}
				idx[k] = n
			}

			s, err := load()
			if err != nil {
				return err
			}
			tab, err := loadTable(s)
			if err != nil {
				return err
			}
			if s.Precision == 32 {
				return runGet[float32](s, tab, logger(), idx)
			}
			return runGet[float64](s, tab, logger(), idx)
		},
	}
}

func runGet[F cmat.Float](s settings, tab *dataset.Table, log *logrus.Logger, idx []int) error {
	m, err := openMatrix[F](s, tab, log)
	if err != nil {
		return err
	}
	defer m.Close()

	for k := 0; k < len(idx); k += 2 {
		v, err := m.Lookup(idx[k], idx[k+1])
		if err != nil {
			red.Printf("(%d,%d) %v\n", idx[k], idx[k+1], err)
			continue
		}
		fmt.Printf("(%d,%d) %g\n", idx[k], idx[k+1], float64(v))
	}
	return nil
}
