package export

import (
	"bytes"

	"github.com/jedib0t/go-pretty/v6/table"

	"f1telemetrycompare/pkg/helper"
	"f1telemetrycompare/pkg/model"
)

const (
	tableDriver   = "PIL"
	tableLapTime  = "Tiempo"
	tableMaxSpeed = "V.Máx"
	tableAvgSpeed = "V.Media"
)

// SummaryTable renders the comparison as a rounded table, the same texture
// the bot uses for session results.
func SummaryTable(result model.ComparisonResult) string {
	var b bytes.Buffer
	t := table.NewWriter()
	t.SetOutputMirror(&b)
	t.SetStyle(table.StyleRounded)
	t.AppendSeparator()

	t.AppendHeader(table.Row{tableDriver, tableLapTime, tableMaxSpeed, tableAvgSpeed})
	t.AppendRow(summaryRow(result.DriverA, result.LapTimeA, result.MaxSpeedA, result.AvgSpeedA, result.FasterDriver))
	t.AppendRow(summaryRow(result.DriverB, result.LapTimeB, result.MaxSpeedB, result.AvgSpeedB, result.FasterDriver))
	t.AppendFooter(table.Row{"", "", "Dif.", helper.FormatDelta(result.TimeDelta)})
	t.Render()

	return b.String()
}

func summaryRow(driver string, lapTime, maxSpeed, avgSpeed float64, fasterDriver string) table.Row {
	name := driver
	if driver == fasterDriver {
		name = "🏆 " + driver
	}
	return table.Row{
		name,
		helper.FormatLapTime(lapTime),
		helper.FormatSpeed(maxSpeed),
		helper.FormatSpeed(avgSpeed),
	}
}
