package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/corrmat/cmat"
	"github.com/utkarsh5026/corrmat/internal/dataset"
)

// maxShow is the largest V printed without --force.
const maxShow = 32

func newShowCmd(load func() (settings, error), logger func() *logrus.Logger) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole matrix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			tab, err := loadTable(s)
			if err != nil {
				return err
			}
			if tab.V > maxShow && !force {
				return fmt.Errorf("matrix has %d rows, use --force to print more than %d", tab.V, maxShow)
			}
			if s.Precision == 32 {
				return runShow[float32](s, tab, logger())
			}
			return runShow[float64](s, tab, logger())
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "print matrices of any size")
	return cmd
}

func runShow[F cmat.Float](s settings, tab *dataset.Table, log *logrus.Logger) error {
	m, err := openMatrix[F](s, tab, log)
	if err != nil {
		return err
	}
	defer m.Close()

	bold.Printf("%s matrix, %d × %d, %s\n", m.Kind(), m.V(), m.V(), m.Strategy())
	return m.Show(os.Stdout)
}
