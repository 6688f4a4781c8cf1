package statement

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoTransactions is returned by ProcessBatch when not a single
// transaction could be extracted from any file in the batch. It is the only
// error condition the extraction pipeline surfaces to callers; everything
// below it is absorbed per value, per record or per file.
var ErrNoTransactions = errors.New("no valid transactions found in any file")

// FileStatus reports the outcome of processing one file of a batch.
type FileStatus struct {
	Filename          string `json:"filename"`
	Status            string `json:"status"`
	TransactionsCount *int   `json:"transactions_count,omitempty"`
	Error             string `json:"error,omitempty"`
}

// Processor extracts transactions from uploaded statement files. It holds no
// per-request state and is safe for concurrent use.
type Processor struct {
	log zerolog.Logger
}

// NewProcessor creates a processor that logs per-file outcomes to log.
func NewProcessor(log zerolog.Logger) *Processor {
	return &Processor{log: log}
}

// ProcessFile extracts transactions from one statement file, dispatching on
// the lowercased filename extension. Tabular formats decode to records and
// run through the field-name heuristics; PDFs run each extracted text line
// through the positional patterns. An unrecognized extension is an error for
// this file only.
func (p *Processor) ProcessFile(data []byte, filename string) ([]Transaction, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err := DecodeCSV(data)
		if err != nil {
			return nil, err
		}
		return extractAll(records), nil
	case ".xlsx", ".xls":
		records, err := DecodeExcel(data)
		if err != nil {
			return nil, err
		}
		return extractAll(records), nil
	case ".json":
		records, err := DecodeJSON(data)
		if err != nil {
			return nil, err
		}
		return extractAll(records), nil
	case ".pdf":
		lines, err := ExtractPDFLines(data)
		if err != nil {
			return nil, err
		}
		var txs []Transaction
		for _, line := range lines {
			if t, ok := ParseStatementLine(line); ok {
				txs = append(txs, t)
			}
		}
		return txs, nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filename)
	}
}

func extractAll(records []RawRecord) []Transaction {
	var txs []Transaction
	for _, rec := range records {
		if t, ok := ExtractTransaction(rec); ok {
			txs = append(txs, t)
		}
	}
	return txs
}

// ProcessBatch processes every file of a batch and concatenates the
// extracted transactions in submission order. A file that fails to decode or
// has an unsupported format gets an error status but never aborts the other
// files; the batch as a whole fails only with ErrNoTransactions, in which
// case the per-file statuses are still returned.
func (p *Processor) ProcessBatch(files []StatementFile) ([]Transaction, []FileStatus, error) {
	var all []Transaction
	statuses := make([]FileStatus, 0, len(files))

	for _, f := range files {
		if f.Name == "" {
			continue
		}
		txs, err := p.ProcessFile(f.Data, f.Name)
		if err != nil {
			p.log.Warn().Err(err).Str("filename", f.Name).Msg("File processing failed")
			statuses = append(statuses, FileStatus{Filename: f.Name, Status: "error", Error: err.Error()})
			continue
		}
		p.log.Info().Str("filename", f.Name).Int("transactions", len(txs)).Msg("File processed")
		count := len(txs)
		statuses = append(statuses, FileStatus{Filename: f.Name, Status: "success", TransactionsCount: &count})
		all = append(all, txs...)
	}

	if len(all) == 0 {
		return nil, statuses, ErrNoTransactions
	}
	return all, statuses, nil
}
