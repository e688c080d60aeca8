package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"munidocs/internal/domain"
)

const (
	transactionsSheet = "Transacciones"
	summarySheet      = "Resumen"
)

var summaryColumns = []string{"Agente", "Llamadas", "Tokens entrada", "Tokens salida", "Tokens total", "Costo USD"}

// WriteUsageXLSX writes a workbook with one sheet of transactions and one of
// per-agent totals.
func WriteUsageXLSX(w io.Writer, txs []domain.UsageTransaction, summary []domain.UsageSummary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, transactionsSheet, 1, toCells(usageColumns)); err != nil {
		return err
	}
	for i := range txs {
		tx := &txs[i]
		docID := ""
		if tx.DocumentID != nil {
			docID = tx.DocumentID.String()
		}
		row := []interface{}{
			tx.CreatedAt.Format("2006-01-02 15:04:05"),
			string(tx.Agent),
			tx.Model,
			tx.TokensIn,
			tx.TokensOut,
			tx.TokensTotal,
			tx.CostEstimate,
			tx.DurationMs,
			string(tx.Status),
			docID,
		}
		if err := writeRow(f, transactionsSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := writeRow(f, summarySheet, 1, toCells(summaryColumns)); err != nil {
		return err
	}
	for i, s := range summary {
		row := []interface{}{string(s.Agent), s.Calls, s.TokensIn, s.TokensOut, s.TokensTotal, s.CostTotal}
		if err := writeRow(f, summarySheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
