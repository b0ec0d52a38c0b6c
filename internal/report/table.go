package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"feedbackclassifier/internal/domain"
)

// WriteCSV writes the input columns followed by labelColumn. An input
// column already named labelColumn is overwritten in place.
func WriteCSV(path string, table *domain.Table, preds []domain.Prediction, labelColumn string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	if err := EncodeCSV(f, table, preds, labelColumn); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	return nil
}

func EncodeCSV(w io.Writer, table *domain.Table, preds []domain.Prediction, labelColumn string) error {
	if len(preds) != len(table.Records) {
		return fmt.Errorf("%w: %d predictions for %d rows", domain.ErrOutputWrite, len(preds), len(table.Records))
	}

	labelIdx := -1
	for i, name := range table.Header {
		if name == labelColumn {
			labelIdx = i
			break
		}
	}

	cw := csv.NewWriter(w)
	header := append([]string(nil), table.Header...)
	if labelIdx < 0 {
		header = append(header, labelColumn)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	for i, rec := range table.Records {
		row := append([]string(nil), rec.Values...)
		if labelIdx < 0 {
			row = append(row, preds[i].Category())
		} else {
			row[labelIdx] = preds[i].Category()
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutputWrite, err)
	}
	return nil
}
