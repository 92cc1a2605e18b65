package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"f1telemetrycompare/pkg/model"
)

var csvHeader = []string{"Driver", "Distance", "Speed", "Throttle", "Brake", "Gear", "LapTime"}

// WriteTelemetryCSV writes both drivers' samples into a single combined file,
// one block per driver, with a Driver column identifying each row.
func WriteTelemetryCSV(path string, records ...model.LapRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, record := range records {
		for _, s := range record.Samples {
			row := []string{
				record.DriverCode,
				formatFloat(s.Distance),
				formatFloat(s.Speed),
				formatFloat(s.Throttle),
				formatFloat(s.Brake),
				strconv.Itoa(s.Gear),
				fmt.Sprintf("%.3f", s.LapTime),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
