package statement

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDecodeCSV(t *testing.T) {
	data := []byte("Date,Description,Debit,Credit\n" +
		"2024-01-05,Grocery Store,450.00,\n" +
		"2024-01-31,Salary,,50000\n")

	records, err := DecodeCSV(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, RawRecord{
		{Name: "Date", Value: "2024-01-05"},
		{Name: "Description", Value: "Grocery Store"},
		{Name: "Debit", Value: "450.00"},
		{Name: "Credit", Value: ""},
	}, records[0])
	assert.Equal(t, RawRecord{
		{Name: "Date", Value: "2024-01-31"},
		{Name: "Description", Value: "Salary"},
		{Name: "Debit", Value: ""},
		{Name: "Credit", Value: "50000"},
	}, records[1])
}

func TestDecodeCSV_ShortRowsPadded(t *testing.T) {
	data := []byte("Date,Description,Amount\n2024-01-05,Fuel\n")

	records, err := DecodeCSV(data)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, Field{Name: "Amount", Value: ""}, records[0][2])
}

func TestDecodeCSV_HeaderOnly(t *testing.T) {
	records, err := DecodeCSV([]byte("Date,Description,Amount\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeCSV_Empty(t *testing.T) {
	records, err := DecodeCSV(nil)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestDecodeJSON(t *testing.T) {
	data := []byte(`[
		{"Debit": "100.00", "Narration": "Electricity Bill"},
		{"date": "2024-02-01", "amount": 1500, "description": "Consulting fee"}
	]`)

	records, err := DecodeJSON(data)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, RawRecord{
		{Name: "Debit", Value: "100.00"},
		{Name: "Narration", Value: "Electricity Bill"},
	}, records[0])
	// Numbers decode as float64, key order is preserved.
	assert.Equal(t, RawRecord{
		{Name: "date", Value: "2024-02-01"},
		{Name: "amount", Value: 1500.0},
		{Name: "description", Value: "Consulting fee"},
	}, records[1])
}

func TestDecodeJSON_NotAnArray(t *testing.T) {
	records, err := DecodeJSON([]byte(`{"amount": 100}`))
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestDecodeJSON_NonObjectElement(t *testing.T) {
	_, err := DecodeJSON([]byte(`[{"amount": 1}, 42]`))
	assert.Error(t, err)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	_, err := DecodeJSON([]byte(`[{"amount": `))
	assert.Error(t, err)
}

func TestDecodeExcel(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Date", "Credit", "Description"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"2024-01-31", "50000", "Monthly Salary Payment"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, derr := DecodeExcel(buf.Bytes())
	require.NoError(t, derr)
	require.Len(t, records, 1)
	assert.Equal(t, RawRecord{
		{Name: "Date", Value: "2024-01-31"},
		{Name: "Credit", Value: "50000"},
		{Name: "Description", Value: "Monthly Salary Payment"},
	}, records[0])
}

func TestDecodeExcel_NotAWorkbook(t *testing.T) {
	_, err := DecodeExcel([]byte("not a workbook"))
	assert.Error(t, err)
}

// minimalPDF assembles a single-page document around the given content
// stream, with a correct xref table so the reader accepts the file and gets
// as far as interpreting the stream.
func minimalPDF(content string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xrefPos := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for i := 1; i <= len(objects); i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefPos)
	return buf.Bytes()
}

func TestExtractPDFLines_MalformedContentStream(t *testing.T) {
	// Td takes two operands; a single one makes the interpreter panic
	// internally, which must surface as a decode error.
	_, err := ExtractPDFLines(minimalPDF("BT 1 Td ET"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed document")
}

func TestExtractPDFLines_NotAPDF(t *testing.T) {
	_, err := ExtractPDFLines([]byte("plain text"))
	assert.Error(t, err)
}
