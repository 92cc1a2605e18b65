package charts

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/llgcode/draw2d"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"github.com/llgcode/draw2d/draw2dsvg"
	"github.com/pkg/errors"

	"f1telemetrycompare/pkg/model"
)

const (
	ChartsDir = "./f1_charts"

	chartWidth  = 1200
	chartHeight = 500
	margin      = 60
	gridLines   = 8
)

// Metric selects which telemetry channel a chart plots against distance.
type Metric string

const (
	MetricSpeed    Metric = "speed"
	MetricThrottle Metric = "throttle"
)

var seriesColors = []color.RGBA{
	{0x1f, 0x77, 0xb4, 0xff},
	{0xd6, 0x27, 0x28, 0xff},
}

func init() {
	// create charts dir if not exists
	if _, err := os.Stat(ChartsDir); os.IsNotExist(err) {
		os.Mkdir(ChartsDir, 0755)
	}
}

// FilePath returns where the chart for a session and metric is written.
func FilePath(session model.SessionRef, metric Metric, ext string) string {
	return filepath.Join(ChartsDir, fmt.Sprintf("%s_%s.%s", session.ID(), metric, ext))
}

// BuildComparisonPNG renders both drivers' metric-vs-distance traces into a
// single PNG chart.
func BuildComparisonPNG(path string, metric Metric, records ...model.LapRecord) error {
	series, bnds, err := extractSeries(metric, records)
	if err != nil {
		return err
	}

	rect := image.Rect(0, 0, chartWidth, chartHeight)
	dest := image.NewRGBA(rect)
	gc := draw2dimg.NewGraphicContext(dest)

	drawChart(gc, series, bnds)
	return draw2dimg.SaveToPngFile(path, dest)
}

// BuildComparisonSVG renders the same chart as a scalable SVG, used by the
// dashboard page.
func BuildComparisonSVG(path string, metric Metric, records ...model.LapRecord) error {
	series, bnds, err := extractSeries(metric, records)
	if err != nil {
		return err
	}

	dest := draw2dsvg.NewSvg()
	gc := draw2dsvg.NewGraphicContext(dest)

	drawChart(gc, series, bnds)
	return draw2dsvg.SaveToSvgFile(path, dest)
}

type point struct {
	x float64
	y float64
}

type series struct {
	color  color.RGBA
	points []point
}

type bounds struct {
	minX float64
	maxX float64
	minY float64
	maxY float64
}

func extractSeries(metric Metric, records []model.LapRecord) ([]series, bounds, error) {
	if len(records) == 0 {
		return nil, bounds{}, errors.New("no lap records to plot")
	}

	all := make([]series, len(records))
	bnds := bounds{}
	first := true
	for i, record := range records {
		if len(record.Samples) == 0 {
			return nil, bounds{}, errors.Errorf("driver %s: no telemetry samples to plot", record.DriverCode)
		}
		s := series{color: seriesColors[i%len(seriesColors)]}
		for _, sample := range record.Samples {
			p := point{x: sample.Distance}
			switch metric {
			case MetricThrottle:
				p.y = sample.Throttle
			default:
				p.y = sample.Speed
			}
			if first {
				bnds = bounds{minX: p.x, maxX: p.x, minY: p.y, maxY: p.y}
				first = false
			}
			if p.x < bnds.minX {
				bnds.minX = p.x
			}
			if p.x > bnds.maxX {
				bnds.maxX = p.x
			}
			if p.y < bnds.minY {
				bnds.minY = p.y
			}
			if p.y > bnds.maxY {
				bnds.maxY = p.y
			}
			s.points = append(s.points, p)
		}
		all[i] = s
	}

	// flat traces still need a visible vertical range
	if bnds.maxY == bnds.minY {
		bnds.maxY = bnds.minY + 1
	}
	if bnds.maxX == bnds.minX {
		bnds.maxX = bnds.minX + 1
	}
	return all, bnds, nil
}

func drawChart(gc draw2d.GraphicContext, all []series, bnds bounds) {
	// background
	gc.SetFillColor(color.RGBA{0xff, 0xff, 0xff, 0xff})
	draw2dkit.Rectangle(gc, 0, 0, chartWidth, chartHeight)
	gc.Fill()

	drawGrid(gc)
	drawAxes(gc)

	for _, s := range all {
		gc.Save()
		gc.SetStrokeColor(s.color)
		gc.SetLineWidth(2.5)
		for i, p := range s.points {
			x, y := transform(p, bnds)
			if i == 0 {
				gc.MoveTo(x, y)
			} else {
				gc.LineTo(x, y)
			}
		}
		gc.Stroke()
		gc.Restore()
	}

	drawLegend(gc, all)
}

// transform maps a data point into plot pixels, Y growing upwards.
func transform(p point, bnds bounds) (float64, float64) {
	plotW := float64(chartWidth - 2*margin)
	plotH := float64(chartHeight - 2*margin)
	x := margin + (p.x-bnds.minX)/(bnds.maxX-bnds.minX)*plotW
	y := float64(chartHeight-margin) - (p.y-bnds.minY)/(bnds.maxY-bnds.minY)*plotH
	return x, y
}

func drawGrid(gc draw2d.GraphicContext) {
	gc.Save()
	gc.SetStrokeColor(color.RGBA{0xdd, 0xdd, 0xdd, 0xff})
	gc.SetLineWidth(1)
	plotW := float64(chartWidth - 2*margin)
	plotH := float64(chartHeight - 2*margin)
	for i := 1; i <= gridLines; i++ {
		y := float64(chartHeight-margin) - plotH*float64(i)/float64(gridLines)
		gc.MoveTo(margin, y)
		gc.LineTo(margin+plotW, y)
		gc.Stroke()

		x := float64(margin) + plotW*float64(i)/float64(gridLines)
		gc.MoveTo(x, margin)
		gc.LineTo(x, float64(chartHeight-margin))
		gc.Stroke()
	}
	gc.Restore()
}

func drawAxes(gc draw2d.GraphicContext) {
	gc.Save()
	gc.SetStrokeColor(color.RGBA{0x00, 0x00, 0x00, 0xff})
	gc.SetLineWidth(2)
	gc.MoveTo(margin, margin)
	gc.LineTo(margin, chartHeight-margin)
	gc.LineTo(chartWidth-margin, chartHeight-margin)
	gc.Stroke()
	gc.Restore()
}

// drawLegend paints one color swatch per series in the top-right corner; the
// dashboard page and the bot caption carry the driver names.
func drawLegend(gc draw2d.GraphicContext, all []series) {
	gc.Save()
	for i, s := range all {
		y := float64(margin/2 + i*14)
		gc.SetStrokeColor(s.color)
		gc.SetLineWidth(6)
		gc.MoveTo(chartWidth-margin-60, y)
		gc.LineTo(chartWidth-margin, y)
		gc.Stroke()
	}
	gc.Restore()
}
