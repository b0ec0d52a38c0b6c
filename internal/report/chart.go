package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"feedbackclassifier/internal/domain"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 6 * vg.Inch
)

var errNoPredictions = errors.New("no predictions to plot")

func newChart(dist domain.CategoryDistribution) (*plot.Plot, error) {
	if len(dist) == 0 {
		return nil, errNoPredictions
	}

	p := plot.New()
	p.Title.Text = "Feedback Category Distribution"
	p.X.Label.Text = "Category"
	p.Y.Label.Text = "Number of Feedbacks"
	p.Y.Min = 0

	values := make(plotter.Values, len(dist))
	names := make([]string, len(dist))
	for i, c := range dist {
		values[i] = float64(c.Count)
		names[i] = c.Category
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// RenderChart writes the distribution as a PNG bar chart.
func RenderChart(w io.Writer, dist domain.CategoryDistribution) error {
	p, err := newChart(dist)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	return nil
}

// SaveChart picks the image format from the file extension, PNG when
// there is none.
func SaveChart(path string, dist domain.CategoryDistribution) error {
	if filepath.Ext(path) == "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
		}
		if err := RenderChart(f, dist); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
		}
		return nil
	}

	p, err := newChart(dist)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	if err := p.Save(chartWidth, chartHeight, path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	return nil
}
