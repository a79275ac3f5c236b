package paypal

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"
)

// utf8BOM is the byte order mark PayPal prepends to its exports
// (utf-8-sig encoding).
var utf8BOM = []byte{0xef, 0xbb, 0xbf}

// readRows reads a CSV stream into a header and one map per data row, keyed
// by the raw locale-specific header fields. Any encoding or CSV structure
// problem yields a DecodeError so the caller can treat the file as not
// extractable instead of emitting a partial result.
func readRows(filename string, r io.Reader) ([]string, []map[string]string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, &DecodeError{Filename: filename, Err: err}
	}

	content = bytes.TrimPrefix(content, utf8BOM)

	if !utf8.Valid(content) {
		return nil, nil, &DecodeError{Filename: filename, Err: fmt.Errorf("not valid UTF-8")}
	}

	reader := csv.NewReader(bytes.NewReader(content))

	header, err := reader.Read()
	if err != nil {
		return nil, nil, &DecodeError{Filename: filename, Err: err}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &DecodeError{Filename: filename, Err: err}
		}

		row := make(map[string]string, len(header))
		for i, field := range header {
			if i < len(record) {
				row[field] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
