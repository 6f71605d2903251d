package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type exportData struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	Series []Series    `json:"series"`
}

// ExportJSON writes a run as a single JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, times []float64, series []Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{Meta: meta, Times: times, Series: series})
}

// ExportCSV writes a run's time grid and observable columns as CSV.
func ExportCSV(w io.Writer, times []float64, series []Series) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"time"}
	for _, col := range series {
		header = append(header, col.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i := range times {
		row := []string{strconv.FormatFloat(times[i], 'g', 12, 64)}
		for _, col := range series {
			row = append(row, strconv.FormatFloat(col.Values[i], 'g', 12, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
