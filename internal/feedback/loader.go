package feedback

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"feedbackclassifier/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func Load(path string) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file '%s' not found", domain.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("%w: open %s: %v", domain.ErrInputParse, path, err)
	}
	defer f.Close()

	table, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Read parses a CSV with a header row and requires a Feedback column.
// Short rows are padded with empty cells; rows wider than the header are
// a parse error.
func Read(r io.Reader) (*domain.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read: %v", domain.ErrInputParse, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no columns to parse from file", domain.ErrInputParse)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", domain.ErrInputParse, err)
	}

	feedbackIdx := -1
	for i, name := range header {
		if name == domain.FeedbackColumn {
			feedbackIdx = i
			break
		}
	}
	if feedbackIdx < 0 {
		return nil, fmt.Errorf("%w: '%s' column not found in the input CSV", domain.ErrMissingColumn, domain.FeedbackColumn)
	}

	table := &domain.Table{
		Header:        header,
		FeedbackIndex: feedbackIdx,
	}
	for row := 1; ; row++ {
		values, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInputParse, err)
		}
		if len(values) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%w: record on line %d: expected %d fields, saw %d", domain.ErrInputParse, line, len(header), len(values))
		}
		for len(values) < len(header) {
			values = append(values, "")
		}
		table.Records = append(table.Records, domain.FeedbackRecord{Row: row, Values: values})
	}
	return table, nil
}
