package main

import (
	"github.com/bamsammich/covidspark/internal/series"
)

// metricFlag is a pflag.Value that parses --metric into a series.Metric.
type metricFlag struct {
	m *series.Metric
}

func (f metricFlag) String() string {
	if f.m == nil {
		return series.Positive.String()
	}
	return f.m.String()
}

func (metricFlag) Type() string { return "metric" }

func (f metricFlag) Set(val string) error {
	m, err := series.ParseMetric(val)
	if err != nil {
		return err
	}
	*f.m = m
	return nil
}

// scaleFlag is a pflag.Value that parses --scale into a series.TimeScale.
type scaleFlag struct {
	s *series.TimeScale
}

func (f scaleFlag) String() string {
	if f.s == nil {
		return series.Max.String()
	}
	return f.s.String()
}

func (scaleFlag) Type() string { return "scale" }

func (f scaleFlag) Set(val string) error {
	s, err := series.ParseTimeScale(val)
	if err != nil {
		return err
	}
	*f.s = s
	return nil
}
