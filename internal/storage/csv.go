package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/ezflow/internal/flow"
	"gonum.org/v1/gonum/mat"
)

// CSVHeader is the column layout of field.csv.
var CSVHeader = []string{"x", "y", "u", "v", "psi"}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteCSV writes one record per grid sample in row-major order. The psi
// column is NaN when the field has no streamfunction.
func WriteCSV(w io.Writer, g flow.Grid, f flow.Field) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}

	rows, cols := g.Dims()
	record := make([]string, len(CSVHeader))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x, y := g.At(i, j)
			psi := math.NaN()
			if f.Psi != nil {
				psi = f.Psi.At(i, j)
			}
			record[0] = formatFloat(x)
			record[1] = formatFloat(y)
			record[2] = formatFloat(f.U.At(i, j))
			record[3] = formatFloat(f.V.At(i, j))
			record[4] = formatFloat(psi)
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a field written by WriteCSV back onto a rows x cols grid.
func ReadCSV(r io.Reader, rows, cols int) (flow.Grid, flow.Field, error) {
	if rows < 1 || cols < 1 {
		return flow.Grid{}, flow.Field{}, fmt.Errorf("%w: %dx%d grid", ErrCorruptRun, rows, cols)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	records, err := cr.ReadAll()
	if err != nil {
		return flow.Grid{}, flow.Field{}, err
	}
	if len(records) != rows*cols+1 {
		return flow.Grid{}, flow.Field{}, fmt.Errorf("%w: %d records for a %dx%d grid",
			ErrCorruptRun, len(records)-1, rows, cols)
	}

	for k, name := range records[0] {
		if name != CSVHeader[k] {
			return flow.Grid{}, flow.Field{}, fmt.Errorf("%w: unexpected column %q", ErrCorruptRun, name)
		}
	}

	cells := make([][]float64, len(CSVHeader))
	for k := range cells {
		cells[k] = make([]float64, rows*cols)
	}
	for n, record := range records[1:] {
		for k, s := range record {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return flow.Grid{}, flow.Field{}, fmt.Errorf("%w: line %d: %v", ErrCorruptRun, n+2, err)
			}
			cells[k][n] = v
		}
	}

	g := flow.NewGrid(mat.NewDense(rows, cols, cells[0]), mat.NewDense(rows, cols, cells[1]))
	f := flow.Field{
		U:   mat.NewDense(rows, cols, cells[2]),
		V:   mat.NewDense(rows, cols, cells[3]),
		Psi: mat.NewDense(rows, cols, cells[4]),
	}
	return g, f, nil
}
