package services

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/prefeitura-rio/app-painel-dengue/internal/models"
	"github.com/prefeitura-rio/app-painel-dengue/internal/utils"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartKind names one of the dashboard figures
type ChartKind string

// Dashboard figures
const (
	ChartMunicipios    ChartKind = "municipios"
	ChartSemanas       ChartKind = "semanas"
	ChartClassificacao ChartKind = "classificacao"
)

// ChartFormat is an output image format
type ChartFormat string

// Supported image formats
const (
	ChartSVG ChartFormat = "svg"
	ChartPNG ChartFormat = "png"
)

// ContentType returns the MIME type of the format
func (f ChartFormat) ContentType() string {
	if f == ChartPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Chart titles
const (
	TituloMunicipios    = "Top 10 Municípios com Mais Casos"
	TituloSemanas       = "Casos por Semana"
	TituloClassificacao = "Classificação Final"
	rotuloSemDados      = "Sem dados"
)

var corBarras = drawing.ColorFromHex("3498db")

// ParseChartName splits "municipios.svg" into kind and format
func ParseChartName(name string) (ChartKind, ChartFormat, error) {
	base, ext, ok := strings.Cut(name, ".")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", models.ErrInvalidFormat, name)
	}

	kind := ChartKind(base)
	switch kind {
	case ChartMunicipios, ChartSemanas, ChartClassificacao:
	default:
		return "", "", fmt.Errorf("%w: %q", models.ErrInvalidChart, base)
	}

	format := ChartFormat(strings.ToLower(ext))
	if format != ChartSVG && format != ChartPNG {
		return "", "", fmt.Errorf("%w: %q", models.ErrInvalidFormat, ext)
	}
	return kind, format, nil
}

// ChartRenderer draws the dashboard figures with go-chart
type ChartRenderer struct {
	Width  int
	Height int
}

// NewChartRenderer creates a renderer with the dashboard's figure size
func NewChartRenderer() *ChartRenderer {
	return &ChartRenderer{Width: 960, Height: 420}
}

// Render writes the requested figure of result to w
func (r *ChartRenderer) Render(w io.Writer, kind ChartKind, format ChartFormat, result *models.DashboardResult) error {
	provider := chart.SVG
	if format == ChartPNG {
		provider = chart.PNG
	}

	var err error
	switch kind {
	case ChartMunicipios:
		err = r.barChart(result.TopMunicipios).Render(provider, w)
	case ChartSemanas:
		switch len(result.CasosPorSemana) {
		case 0:
			err = r.placeholder(TituloSemanas).Render(provider, w)
		case 1:
			err = r.singleWeek(result.CasosPorSemana[0]).Render(provider, w)
		default:
			err = r.lineChart(result.CasosPorSemana).Render(provider, w)
		}
	case ChartClassificacao:
		if len(result.Classificacao) == 0 {
			err = r.placeholder(TituloClassificacao).Render(provider, w)
		} else {
			err = r.pieChart(result.Classificacao).Render(provider, w)
		}
	default:
		return fmt.Errorf("%w: %q", models.ErrInvalidChart, kind)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", kind, err)
	}
	return nil
}

func (r *ChartRenderer) barChart(counts []models.CategoryCount) chart.BarChart {
	if len(counts) == 0 {
		return r.placeholder(TituloMunicipios)
	}

	bars := make([]chart.Value, 0, len(counts))
	maxCasos := 0
	for _, c := range counts {
		bars = append(bars, chart.Value{
			Label: c.Label,
			Value: float64(c.Casos),
			Style: chart.Style{FillColor: corBarras, StrokeColor: corBarras},
		})
		if c.Casos > maxCasos {
			maxCasos = c.Casos
		}
	}

	barWidth := (r.Width - 120) / (len(bars) * 2)
	if barWidth > 60 {
		barWidth = 60
	}

	return chart.BarChart{
		Title:      TituloMunicipios,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   barWidth,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{FontSize: 7},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(maxCasos)},
			ValueFormatter: casosFormatter,
		},
		Bars: bars,
	}
}

func (r *ChartRenderer) lineChart(weeks []models.WeekCount) chart.Chart {
	xs := make([]float64, len(weeks))
	ys := make([]float64, len(weeks))
	maxCasos := 0
	for i, w := range weeks {
		xs[i] = float64(w.Semana)
		ys[i] = float64(w.Casos)
		if w.Casos > maxCasos {
			maxCasos = w.Casos
		}
	}

	minX, maxX := xs[0]-1, xs[len(xs)-1]+1
	step := int(math.Ceil(float64(len(weeks)) / 20))
	ticks := make([]chart.Tick, 0, len(weeks)/step+1)
	for i := 0; i < len(weeks); i += step {
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: strconv.Itoa(weeks[i].Semana)})
	}

	return chart.Chart{
		Title:      TituloSemanas,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  "SEMANA",
			Range: &chart.ContinuousRange{Min: minX, Max: maxX},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name:           "Casos",
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(maxCasos)},
			ValueFormatter: casosFormatter,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Casos",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: corBarras,
					StrokeWidth: 2,
					DotColor:    corBarras,
					DotWidth:    4,
				},
			},
		},
	}
}

// singleWeek draws one labelled bar; go-chart needs two x values for a line
func (r *ChartRenderer) singleWeek(week models.WeekCount) chart.BarChart {
	return chart.BarChart{
		Title:      TituloSemanas,
		Width:      r.Width,
		Height:     r.Height,
		BarWidth:   60,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: axisMax(week.Casos)},
			ValueFormatter: casosFormatter,
		},
		Bars: []chart.Value{{
			Label: "Semana " + strconv.Itoa(week.Semana),
			Value: float64(week.Casos),
			Style: chart.Style{FillColor: corBarras, StrokeColor: corBarras},
		}},
	}
}

func (r *ChartRenderer) pieChart(counts []models.CategoryCount) chart.PieChart {
	values := make([]chart.Value, 0, len(counts))
	for _, c := range counts {
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%s)", c.Label, utils.FormatInt(c.Casos)),
			Value: float64(c.Casos),
		})
	}

	return chart.PieChart{
		Title:      TituloClassificacao,
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40}},
		Values:     values,
	}
}

// placeholder is drawn when a figure has no data
func (r *ChartRenderer) placeholder(title string) chart.BarChart {
	return chart.BarChart{
		Title:    title,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: 1},
			ValueFormatter: casosFormatter,
		},
		Bars: []chart.Value{{Label: rotuloSemDados, Value: 0}},
	}
}

// axisMax leaves headroom above the tallest value and never returns 0
func axisMax(maxCasos int) float64 {
	if maxCasos <= 0 {
		return 1
	}
	headroom := maxCasos / 10
	if headroom < 1 {
		headroom = 1
	}
	return float64(maxCasos + headroom)
}

func casosFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return utils.FormatInt(int(math.Round(f)))
	}
	return chart.IntValueFormatter(v)
}
