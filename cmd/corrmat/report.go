package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/utkarsh5026/corrmat/cmat"
)

type report struct {
	V           int      `yaml:"v"`
	T           int      `yaml:"t"`
	Kind        string   `yaml:"kind"`
	Transform   bool     `yaml:"transform"`
	Precision   int      `yaml:"precision"`
	Strategy    string   `yaml:"strategy"`
	Threads     int      `yaml:"threads"`
	Tile        int      `yaml:"tile"`
	BudgetBytes uint64   `yaml:"budget_bytes"`
	CacheBytes  uint64   `yaml:"cache_bytes"`
	Warnings    []string `yaml:"warnings,omitempty"`

	Walk *walkReport `yaml:"walk,omitempty"`
}

type walkReport struct {
	Elements int     `yaml:"elements"`
	Errors   int     `yaml:"errors"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Mean     float64 `yaml:"mean"`
	Refills  int     `yaml:"refills"`
	FillTime string  `yaml:"fill_time"`
	Elapsed  string  `yaml:"elapsed"`
}

func newReport(s settings, v, t int, plan cmat.Plan, elemSize int) *report {
	return &report{
		V:           v,
		T:           t,
		Kind:        s.Kind.String(),
		Transform:   s.Transform,
		Precision:   s.Precision,
		Strategy:    plan.Strategy.String(),
		Threads:     plan.Threads,
		Tile:        plan.Tile,
		BudgetBytes: plan.BudgetBytes,
		CacheBytes:  plan.CacheBytes(v, elemSize),
		Warnings:    plan.Warnings,
	}
}

func (r *report) addStats(st cmat.Stats, elapsed time.Duration) {
	if r.Walk == nil {
		r.Walk = &walkReport{}
	}
	r.Walk.Refills = st.Refills
	r.Walk.FillTime = st.FillTime.String()
	r.Walk.Elapsed = elapsed.String()
}

func (r *report) write(path string) error {
	if path == "" {
		return nil
	}
	out, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
