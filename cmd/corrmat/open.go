package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/utkarsh5026/corrmat/cmat"
	"github.com/utkarsh5026/corrmat/internal/dataset"
)

func loadTable(s settings) (*dataset.Table, error) {
	if s.Rows > 0 {
		return dataset.Synthetic(s.Rows, s.Samples, s.Rho, s.Seed), nil
	}

	var r io.Reader = os.Stdin
	if s.Input != "-" {
		f, err := os.Open(s.Input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	tab, err := dataset.Read(r, dataset.FormatFor(s.Input), s.Header)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.Input, err)
	}
	return tab, nil
}

func openMatrix[F cmat.Float](s settings, tab *dataset.Table, log logrus.FieldLogger) (*cmat.Matrix[F], error) {
	return cmat.NewWithConfig(dataset.Samples[F](tab), tab.V, tab.T, cmat.Config{
		Kind:         s.Kind,
		Transform:    s.Transform,
		Threads:      s.Threads,
		TileSize:     s.Tile,
		MaxMemoryGiB: s.MaxMemGiB,
		Blocking:     s.Blocking,
		Split:        s.Split,
		PinWorkers:   s.Pin,
		Logger:       log,
	})
}
