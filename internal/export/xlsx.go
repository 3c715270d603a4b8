package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

const sheetName = "Branches"

var xlsxHeader = []interface{}{"Branch Name", "Address", "State", "Branch Code"}

// XLSX writes a workbook with one sheet holding the CSV columns. The bank
// name goes into the workbook title.
func XLSX(w io.Writer, bankName string, branches []domain.Branch) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{Title: bankName + " - Branch List"}); err != nil {
		return fmt.Errorf("failed to set workbook title: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, b := range branches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		code := b.BranchCode
		if code == "" {
			code = missingCode
		}
		row := []interface{}{b.BranchName, b.Address, b.State, code}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "B", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "D", 16); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
