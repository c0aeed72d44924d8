package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVSource reads a comma separated export of the price sheet. The first
// record is the header. A leading UTF-8 byte order mark, as written by
// Excel's "CSV UTF-8" export, is skipped.
type CSVSource struct {
	Path string
}

func (s CSVSource) ReadRows(ctx context.Context) ([]RawRow, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", s.Path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("open csv catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv catalog: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rowsFrom(records)
}
