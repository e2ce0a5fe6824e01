package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/corrmat/cmat"
	"github.com/utkarsh5026/corrmat/internal/dataset"
)

type walkOptions struct {
	threshold  float64
	noProgress bool
}

func newWalkCmd(load func() (settings, error), logger func() *logrus.Logger) *cobra.Command {
	var opts walkOptions

	cmd := &cobra.Command{
		Use:   "walk",
		Short: "Traverse the upper triangle and summarize it",
		Long: "Traverse every element of the strict upper triangle in cache order, " +
			"print the pairs whose absolute value reaches --threshold and a summary.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			tab, err := loadTable(s)
			if err != nil {
				return err
			}
			if s.Precision == 32 {
				return runWalk[float32](s, tab, logger(), opts)
			}
			return runWalk[float64](s, tab, logger(), opts)
		},
	}

	cmd.Flags().Float64Var(&opts.threshold, "threshold", math.Inf(1), "print pairs with |value| >= threshold")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "disable the progress bar")
	return cmd
}

type summary struct {
	elements, errors, valid int
	min, max, sum           float64
}

func (s *summary) add(v float64) {
	if s.valid == 0 {
		s.min, s.max = v, v
	}
	s.valid++
	s.min = math.Min(s.min, v)
	s.max = math.Max(s.max, v)
	s.sum += v
}

func runWalk[F cmat.Float](s settings, tab *dataset.Table, log *logrus.Logger, opts walkOptions) error {
	m, err := openMatrix[F](s, tab, log)
	if err != nil {
		return err
	}
	defer m.Close()

	total := int64(tab.V) * int64(tab.V-1) / 2
	var bar *progressbar.ProgressBar
	if !opts.noProgress {
		bar = progressbar.NewOptions64(total,
			progressbar.OptionSetDescription(fmt.Sprintf("Walking %s", m.Strategy())),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	const batch = 4096
	var sum summary
	pending := 0
	start := time.Now()

	for st := m.First(); st != cmat.StatusDone; st = m.Next() {
		row, col := m.Position()
		sum.elements++
		pending++
		if pending == batch && bar != nil {
			_ = bar.Add64(batch)
			pending = 0
		}

		if st == cmat.StatusError {
			if sum.errors == 0 {
				log.WithError(m.Err()).WithFields(logrus.Fields{"row": row, "col": col}).Warn("element failed")
			}
			sum.errors++
			continue
		}

		v := float64(m.Value())
		sum.add(v)
		if math.Abs(v) >= opts.threshold {
			fmt.Fprintf(out, "%d\t%d\t%g\n", row, col, v)
		}
	}
	elapsed := time.Since(start)
	if bar != nil {
		_ = bar.Add64(int64(pending))
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	st := m.Stats()
	printSummary(sum, st, elapsed)

	rep := newReport(s, tab.V, tab.T, m.Plan(), s.Precision/8)
	rep.Walk = &walkReport{
		Elements: sum.elements,
		Errors:   sum.errors,
		Min:      sum.min,
		Max:      sum.max,
		Mean:     sum.mean(),
	}
	rep.addStats(st, elapsed)
	return rep.write(s.Report)
}

func (s summary) mean() float64 {
	if s.valid > 0 {
		return s.sum / float64(s.valid)
	}
	return math.NaN()
}

func printSummary(sum summary, st cmat.Stats, elapsed time.Duration) {
	table := tablewriter.NewWriter(os.Stderr)
	table.Header("Strategy", "Elements", "Errors", "Min", "Max", "Mean", "Refills", "Fill Time", "Elapsed")

	errs := green.Sprint("0")
	if sum.errors > 0 {
		errs = red.Sprint(sum.errors)
	}
	_ = table.Append(
		st.Strategy.String(),
		strconv.Itoa(sum.elements),
		errs,
		fmt.Sprintf("%.4g", sum.min),
		fmt.Sprintf("%.4g", sum.max),
		fmt.Sprintf("%.4g", sum.mean()),
		strconv.Itoa(st.Refills),
		st.FillTime.Round(time.Microsecond).String(),
		elapsed.Round(time.Millisecond).String(),
	)
	_ = table.Render()
}
