package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"munidocs/internal/accounting"
	"munidocs/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// usageColumns defines the header row shared by the CSV and XLSX reports.
var usageColumns = []string{
	"Fecha",
	"Agente",
	"Modelo",
	"Tokens entrada",
	"Tokens salida",
	"Tokens total",
	"Costo USD",
	"Duración ms",
	"Estado",
	"Documento",
}

// UsageCSVWriter wraps csv.Writer for exporting usage transactions.
type UsageCSVWriter struct {
	csv *csv.Writer
}

// NewUsageCSVWriter creates a writer that emits CSV to w.
func NewUsageCSVWriter(w io.Writer) *UsageCSVWriter {
	return &UsageCSVWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *UsageCSVWriter) WriteHeader() error {
	return w.csv.Write(usageColumns)
}

// WriteTransactions converts a batch of transactions to rows and writes them.
func (w *UsageCSVWriter) WriteTransactions(txs []domain.UsageTransaction) error {
	for i := range txs {
		if err := w.csv.Write(transactionToRow(&txs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer and returns its error.
func (w *UsageCSVWriter) Flush() error {
	w.csv.Flush()
	return w.csv.Error()
}

func transactionToRow(tx *domain.UsageTransaction) []string {
	docID := ""
	if tx.DocumentID != nil {
		docID = tx.DocumentID.String()
	}
	return []string{
		tx.CreatedAt.Format(time.RFC3339),
		string(tx.Agent),
		tx.Model,
		strconv.Itoa(tx.TokensIn),
		strconv.Itoa(tx.TokensOut),
		strconv.Itoa(tx.TokensTotal),
		accounting.FormatUSD(tx.CostEstimate),
		strconv.FormatInt(tx.DurationMs, 10),
		string(tx.Status),
		docID,
	}
}

// WriteUsageCSV writes a complete CSV report, BOM included.
func WriteUsageCSV(w io.Writer, txs []domain.UsageTransaction) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := NewUsageCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return err
	}
	if err := cw.WriteTransactions(txs); err != nil {
		return err
	}
	return cw.Flush()
}
