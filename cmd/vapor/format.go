package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	httpAdapter "github.com/aretw0/vapor/pkg/adapters/http"
	"github.com/aretw0/vapor/pkg/domain"
)

// writeJSON emits the same document GET /diagram returns.
func writeJSON(w io.Writer, res *domain.PhaseDiagramResult) error {
	resp := httpAdapter.DiagramResponse{PhaseDiagramResult: res, LowConfidence: res.LowConfidence()}
	if az, ok := res.Azeotrope(); ok {
		resp.Azeotrope = &az
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func writeCSV(w io.Writer, res *domain.PhaseDiagramResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x1", "y1", "temperature_k", "status"}); err != nil {
		return err
	}
	for _, p := range res.Points {
		row := []string{
			strconv.FormatFloat(p.X1, 'f', 6, 64),
			strconv.FormatFloat(p.Y1, 'f', 6, 64),
			strconv.FormatFloat(p.Temperature, 'f', 4, 64),
			string(p.Status),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
