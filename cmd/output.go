package cmd

import (
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

func writeMatrixFile(outfile string, d mat.Symmetric, labels []string, precision int) error {
	if outfile == "-" {
		return writeMatrix(os.Stdout, d, labels, precision)
	}
	o, err := os.Create(outfile)
	if err != nil {
		return err
	}
	defer func() {
		err := o.Close()
		if err != nil {
			slog.Error("Error closing matrix file",
				slog.String("out", outfile),
				slog.Any("err", err))
		}
	}()
	return writeMatrix(o, d, labels, precision)
}

// writeMatrix writes d as CSV, one row per observation. When labels are
// given the first row and column hold them.
func writeMatrix(w io.Writer, d mat.Symmetric, labels []string, precision int) error {
	n := d.SymmetricDim()
	cw := csv.NewWriter(w)
	if labels != nil {
		header := make([]string, 0, n+1)
		header = append(header, "")
		header = append(header, labels...)
		if err := cw.Write(header); err != nil {
			return err
		}
	}

	record := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		record = record[:0]
		if labels != nil {
			record = append(record, labels[i])
		}
		for j := 0; j < n; j++ {
			record = append(record, strconv.FormatFloat(d.At(i, j), 'f', precision, 64))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
