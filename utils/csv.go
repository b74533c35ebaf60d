package utils

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// credentialFields are never coerced to numbers on decode. A pin like
// "0042" must survive a round trip as the same string.
var credentialFields = map[string]bool{
	"pin":     true,
	"pinHash": true,
}

// EncodeCSV renders records as CSV text. The header is the union of
// keys across all records (sorted), so heterogeneous records do not
// silently drop fields. Array and object values are JSON-serialized
// into their cell. An empty record set encodes to empty text.
func EncodeCSV(records []map[string]interface{}) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	headerSet := make(map[string]bool)
	for _, rec := range records {
		for key := range rec {
			headerSet[key] = true
		}
	}
	headers := make([]string, 0, len(headerSet))
	for key := range headerSet {
		headers = append(headers, key)
	}
	sort.Strings(headers)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return "", err
	}

	row := make([]string, len(headers))
	for _, rec := range records {
		for i, key := range headers {
			cell, err := encodeCell(rec[key])
			if err != nil {
				return "", fmt.Errorf("encode field %q: %w", key, err)
			}
			row[i] = cell
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// encodeCell converts a single value to its cell text. Fields absent
// from a record encode as the canonical empty value "".
func encodeCell(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		// Arrays, objects and anything structured go through JSON.
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// DecodeCSV parses CSV text back into records. Line 1 is the header;
// cells starting with '[' or '{' are JSON-parsed, numeric-looking
// cells are coerced to numbers unless the field is a credential or
// the value contains a date-like separator, everything else stays a
// string. Header-only text decodes to an empty sequence.
func DecodeCSV(text string) ([]map[string]interface{}, error) {
	if strings.TrimSpace(text) == "" {
		return []map[string]interface{}{}, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return []map[string]interface{}{}, nil
	}

	headers := rows[0]
	records := make([]map[string]interface{}, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]interface{}, len(headers))
		for i, key := range headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			rec[key] = decodeCell(key, cell)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeCell(field, cell string) interface{} {
	if cell == "" {
		return ""
	}

	if cell[0] == '[' || cell[0] == '{' {
		var parsed interface{}
		if err := json.Unmarshal([]byte(cell), &parsed); err == nil {
			return parsed
		}
		return cell
	}

	if credentialFields[field] {
		return cell
	}

	if cell == "true" {
		return true
	}
	if cell == "false" {
		return false
	}

	// A separator past the first rune means a date or time string,
	// not a number ("-5" is still a number, "2024-01-02" is not).
	if idx := strings.IndexAny(cell, "-/:"); idx > 0 {
		return cell
	}
	if num, err := strconv.ParseFloat(cell, 64); err == nil {
		return num
	}
	return cell
}
