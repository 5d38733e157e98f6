package naivebayes

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/floats"
)

// DefaultPlotPoints is the number of evenly spaced values a density is evaluated at
const DefaultPlotPoints = 200

// LineDensity generates an echart multi-line chart of densities evaluated at x. The input y is
// a slice of series that must each have the same length as x.
func LineDensity(title string, seriesName []string, x []float64, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	xLabels := make([]string, 0, len(x))
	for _, v := range x {
		xLabels = append(xLabels, strconv.FormatFloat(v, 'g', 5, 64))
	}

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(xLabels)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// DensityGrid returns the sorted values a feature density is evaluated at. The range spans the
// observed training values of every class padded by three of the largest standard deviation.
// Constant features add their constant so the point mass shows up in the plot.
func (c *Classifier) DensityGrid(index, points int) ([]float64, error) {
	if points < 2 {
		return nil, fmt.Errorf("got %d points, %w", points, ErrInsufficientGrid)
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	maxStdDev := 0.0
	var constants []float64
	for _, label := range c.ClassLabels() {
		col, err := c.FeatureColumn(index, label)
		if err != nil {
			return nil, err
		}
		lo = math.Min(lo, floats.Min(col))
		hi = math.Max(hi, floats.Max(col))

		g, err := c.FeatureGaussian(index, label)
		if err != nil {
			return nil, err
		}
		if g.Degenerate {
			constants = append(constants, g.Mean)
			continue
		}
		maxStdDev = math.Max(maxStdDev, g.StdDev)
	}

	pad := 3.0 * maxStdDev
	if pad == 0 {
		pad = 1.0
	}
	grid := floats.Span(make([]float64, points), lo-pad, hi+pad)
	grid = append(grid, constants...)
	slices.Sort(grid)
	return slices.Compact(grid), nil
}

// PlotFeature uses the Apache Echarts library to render an html page showing the fitted density
// of a feature for every class.
func (c *Classifier) PlotFeature(w io.Writer, index, points int) error {
	grid, err := c.DensityGrid(index, points)
	if err != nil {
		return err
	}

	labels := c.ClassLabels()
	y := make([][]float64, 0, len(labels))
	for _, label := range labels {
		g, err := c.FeatureGaussian(index, label)
		if err != nil {
			return err
		}
		density := make([]float64, len(grid))
		for i, v := range grid {
			density[i] = g.Prob(v)
		}
		y = append(y, density)
	}

	page := components.NewPage()
	page.AddCharts(
		LineDensity(fmt.Sprintf("Feature %d Density", index), labels, grid, y),
	)
	return page.Render(w)
}
