package statement

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/xuri/excelize/v2"
)

// DecodeCSV decodes delimited text into records, treating the first row as
// column headers. Short rows are padded with empty values so every record
// carries the full header set.
func DecodeCSV(data []byte) ([]RawRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("DecodeCSV: %w", err)
	}
	return rowsToRecords(rows), nil
}

// DecodeExcel decodes the first sheet of a workbook into records, treating
// the first row as column headers.
func DecodeExcel(data []byte) ([]RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("DecodeExcel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("DecodeExcel: reading sheet %q: %w", sheets[0], err)
	}
	return rowsToRecords(rows), nil
}

func rowsToRecords(rows [][]string) []RawRecord {
	if len(rows) == 0 {
		return nil
	}
	headers := rows[0]
	records := make([]RawRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(RawRecord, 0, len(headers))
		for i, name := range headers {
			var value any = ""
			if i < len(row) {
				value = row[i]
			}
			rec = append(rec, Field{Name: name, Value: value})
		}
		records = append(records, rec)
	}
	return records
}

// DecodeJSON decodes a top-level JSON array of objects into records. The
// decoder walks tokens instead of unmarshalling into maps so that each
// object's key order survives, which extraction depends on. A top-level value
// that is not an array yields no records.
func DecodeJSON(data []byte) ([]RawRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("DecodeJSON: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, nil
	}

	var records []RawRecord
	for dec.More() {
		rec, err := decodeJSONObject(dec)
		if err != nil {
			return nil, fmt.Errorf("DecodeJSON: record %d: %w", len(records), err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func decodeJSONObject(dec *json.Decoder) (RawRecord, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("element is %v, want an object", tok)
	}

	var rec RawRecord
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		rec = append(rec, Field{Name: key, Value: value})
	}
	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return rec, nil
}

// ExtractPDFLines extracts the text of every page of a PDF document as
// visual lines, top to bottom. Pages without text contribute nothing.
// The reader panics on malformed content streams; recover turns that into
// an ordinary decode error so a corrupt document stays a per-file failure.
func ExtractPDFLines(data []byte) (lines []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			lines = nil
			err = fmt.Errorf("ExtractPDFLines: malformed document: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("ExtractPDFLines: %w", err)
	}

	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		lines = append(lines, pageLines(page)...)
	}
	return lines, nil
}

// pageLines groups a page's positioned text fragments into lines: fragments
// sharing a Y coordinate belong to the same line, ordered left to right. A
// space is inserted where the horizontal gap between fragments exceeds a
// fraction of the font size, which approximates the word breaks of the
// rendered page.
func pageLines(page pdf.Page) []string {
	texts := page.Content().Text
	if len(texts) == 0 {
		return nil
	}

	byRow := make(map[int][]pdf.Text)
	var ys []int
	for _, t := range texts {
		y := int(math.Round(t.Y))
		if _, seen := byRow[y]; !seen {
			ys = append(ys, y)
		}
		byRow[y] = append(byRow[y], t)
	}
	// The PDF origin is bottom-left, so larger Y means higher on the page.
	sort.Sort(sort.Reverse(sort.IntSlice(ys)))

	lines := make([]string, 0, len(ys))
	for _, y := range ys {
		row := byRow[y]
		sort.Slice(row, func(i, j int) bool { return row[i].X < row[j].X })

		var b strings.Builder
		prevEnd := math.Inf(-1)
		for _, t := range row {
			if b.Len() > 0 && t.X-prevEnd > t.FontSize*0.3 {
				b.WriteByte(' ')
			}
			b.WriteString(t.S)
			prevEnd = t.X + t.W
		}
		lines = append(lines, b.String())
	}
	return lines
}
