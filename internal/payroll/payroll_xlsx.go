package payroll

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const reportSheet = "Payroll"

var reportHeader = []interface{}{
	"Employee ID", "Name", "Email", "Workdays", "Present", "Late", "Early Leave", "Absent",
	"Work Units", "Base Amount", "Adjustments", "Final Amount", "Status", "Failure",
}

// ReportFilename is the download name of a month's spreadsheet.
func ReportFilename(month, year int) string {
	return fmt.Sprintf("payroll-%04d-%02d.xlsx", year, month)
}

// WriteReportXLSX renders the report as a single-sheet workbook: a header row,
// one row per record in report order and a totals row.
func WriteReportXLSX(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(reportSheet, "A1", &reportHeader); err != nil {
		return err
	}
	if err := f.SetRowStyle(reportSheet, 1, 1, bold); err != nil {
		return err
	}

	row := 2
	for _, r := range report.Records {
		values := recordRow(r)
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{
		"TOTAL", "", "", "", "", "", "", "", "",
		report.Totals.BaseAmount,
		report.Totals.AdjustmentTotal,
		report.Totals.FinalAmount,
		fmt.Sprintf("%d OK / %d FAILED", report.Totals.Succeeded, report.Totals.Failed),
		"",
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(reportSheet, cell, &totals); err != nil {
		return err
	}
	if err := f.SetRowStyle(reportSheet, row, row, bold); err != nil {
		return err
	}

	return f.Write(w)
}

func recordRow(r Record) []interface{} {
	values := []interface{}{r.EmployeeID.String(), r.EmployeeName, r.Email}
	if r.Stats != nil && !r.Failed() {
		values = append(values,
			r.Stats.TotalWorkdays,
			r.Stats.PresentDays,
			r.Stats.LateCount,
			r.Stats.EarlyLeaveCount,
			r.Stats.AbsentDays,
			r.Stats.WorkUnits.String(),
			r.BaseAmount,
			r.AdjustmentTotal,
			r.FinalAmount,
		)
	} else {
		values = append(values, "", "", "", "", "", "", "", "", "")
	}
	return append(values, string(r.Status), r.FailureReason)
}
