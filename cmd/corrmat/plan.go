package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/corrmat/internal/cpu"
	"github.com/utkarsh5026/corrmat/internal/planner"
)

func newPlanCmd(load func() (settings, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the strategy a matrix over the input would use",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := load()
			if err != nil {
				return err
			}
			tab, err := loadTable(s)
			if err != nil {
				return err
			}

			elemSize := s.Precision / 8
			plan, err := planner.Resolve(planner.Request{
				V:            tab.V,
				T:            tab.T,
				Threads:      s.Threads,
				Tile:         s.Tile,
				MaxMemoryGiB: s.MaxMemGiB,
				ElemSize:     elemSize,
				NumCPU:       cpu.GetNumCPU(),
			})
			if err != nil {
				return err
			}

			printPlan(tab.V, tab.T, plan, elemSize)
			return newReport(s, tab.V, tab.T, plan, elemSize).write(s.Report)
		},
	}
}

func printPlan(v, t int, plan planner.Plan, elemSize int) {
	bold.Println("Matrix plan")

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Setting", "Value")
	_ = table.Append("V × T", fmt.Sprintf("%d × %d", v, t))
	_ = table.Append("Elements", strconv.FormatUint(planner.Elements(v), 10))
	_ = table.Append("Strategy", plan.Strategy.String())
	_ = table.Append("Threads", strconv.Itoa(plan.Threads))
	_ = table.Append("Tile", strconv.Itoa(plan.Tile))
	_ = table.Append("Budget", formatBytes(plan.BudgetBytes))
	_ = table.Append("Cache", formatBytes(plan.CacheBytes(v, elemSize)))
	_ = table.Render()

	for _, w := range plan.Warnings {
		yellow.Printf("warning: %s\n", w)
	}
}

func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
