package ui

import "github.com/backusd/cubeworld/types"

// A set of fixed length value histories drawn stacked on top of each other.
type stackedSeries struct {
	series [][]float32
	colors []types.Vec3
}

func makeStackedSeries(histCount int, colors ...types.Vec3) *stackedSeries {
	s := &stackedSeries{
		series: make([][]float32, len(colors)),
		colors: colors,
	}

	for sIndex := range colors {
		s.series[sIndex] = make([]float32, histCount)
	}

	return s
}

// Clear series
func (s *stackedSeries) Clear() {
	histCount := len(s.series[0])
	for sIndex := 0; sIndex < len(s.series); sIndex++ {
		s.series[sIndex] = make([]float32, histCount)
	}
}

// Shift series values and append new value at the end.
func (s *stackedSeries) Append(seriesIndex int, val float32) {
	s.series[seriesIndex] = append(s.series[seriesIndex][1:], val)
}

// Get the number of samples kept per series.
func (s *stackedSeries) Len() int {
	return len(s.series[0])
}

// Get the per-sample scale that fits the tallest stack into height.
func (s *stackedSeries) Scale(height float32) float32 {
	var max float32
	for x := 0; x < s.Len(); x++ {
		var sum float32
		for seriesIndex := range s.series {
			sum += s.series[seriesIndex][x]
		}
		if sum > max {
			max = sum
		}
	}
	if max == 0 {
		return 1.0
	}
	return height / max
}
