package cashflow

import (
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/Kartiks5161/Cash-Flow-Dashboard/ensemble"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineTSeries generates an echart multi-line chart for some arbitrary
// time/value combination. Each series in y must have the same length as
// the input time slice; NaN points are skipped.
func LineTSeries(title string, seriesName []string, t []time.Time, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	lineData := make([][]opts.LineData, len(y))
	for i := 0; i < len(y); i++ {
		lineData[i] = make([]opts.LineData, 0, len(y[i]))
		for j := 0; j < len(y[i]); j++ {
			if math.IsNaN(y[i][j]) {
				lineData[i] = append(lineData[i], opts.LineData{Value: nil})
				continue
			}
			lineData[i] = append(lineData[i], opts.LineData{Value: y[i][j]})
		}
	}

	line = line.SetXAxis(t)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData[i])
	}
	return line
}

// LineForecast generates an echart line chart plotting the observed
// ledger values followed by the combined projection with its upper and
// lower bounds.
func LineForecast(history *Engine, res *ensemble.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Cash Flow Forecast",
			},
		),
	)

	td := history.Series()
	combined := res.Combined

	t := make([]time.Time, 0, td.Len()+combined.Horizon)
	t = append(t, td.T...)
	t = append(t, combined.T...)

	lineDataActual := make([]opts.LineData, 0, len(t))
	lineDataForecast := make([]opts.LineData, 0, len(t))
	lineDataUpper := make([]opts.LineData, 0, len(t))
	lineDataLower := make([]opts.LineData, 0, len(t))

	for i := 0; i < td.Len(); i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: td.Y[i]})
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: nil})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: nil})
		lineDataLower = append(lineDataLower, opts.LineData{Value: nil})
	}
	for i := 0; i < combined.Horizon; i++ {
		lineDataActual = append(lineDataActual, opts.LineData{Value: nil})
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: combined.Point[i]})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: combined.Upper[i]})
		lineDataLower = append(lineDataLower, opts.LineData{Value: combined.Lower[i]})
	}

	line.SetXAxis(t).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast).
		AddSeries("Upper", lineDataUpper).
		AddSeries("Lower", lineDataLower)
	return line
}

// PlotForecast runs the ensemble over the given horizon and writes an
// html page with the forecast, the decomposed components, and the
// decomposition residual.
func (e *Engine) PlotForecast(path string, horizon int) error {
	if e.series == nil {
		return ErrNotFitted
	}

	res, err := e.Forecast(horizon)
	if err != nil {
		return fmt.Errorf("unable to forecast for plot, %w", err)
	}

	comps := e.Decomposition()
	page := components.NewPage()
	page.AddCharts(
		LineForecast(e, res),
		LineTSeries(
			"Seasonal Decomposition",
			[]string{"Trend", "Seasonal"},
			comps.Trend.T,
			[][]float64{
				comps.Trend.Y,
				comps.Seasonal.Y,
			},
		),
		LineTSeries(
			"Decomposition Residual",
			[]string{"Residual"},
			comps.Residual.T,
			[][]float64{comps.Residual.Y},
		),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
