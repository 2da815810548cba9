package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
	"github.com/BruksfildServices01/inkless-booking/internal/payment"
)

const purchasesSheet = "Purchases"

var PurchasesHeader = []string{
	"Purchase ID",
	"Created At",
	"Customer",
	"Email",
	"Phone",
	"Package",
	"Sessions Total",
	"Sessions Remaining",
	"Amount Paid",
	"Discount",
	"Coupon",
	"Commission",
	"Payment Method",
	"Payment Status",
	"Status",
}

var purchasesColumnWidths = []float64{38, 18, 24, 30, 16, 28, 10, 10, 14, 12, 14, 12, 12, 12, 12}

// PurchasesXLSX renders purchases as a workbook. Amounts are written in major
// units of currency; packageNames maps package IDs to display names.
func PurchasesXLSX(purchases []models.Purchase, packageNames map[string]string, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(purchasesSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D4AF37"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(purchasesSheet, "A1", &PurchasesHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(PurchasesHeader), 1)
	if err := f.SetCellStyle(purchasesSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, width := range purchasesColumnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(purchasesSheet, col, col, width); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, p := range purchases {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		coupon := ""
		if p.CouponCode != nil {
			coupon = *p.CouponCode
		}

		row := []any{
			p.ID,
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.CustomerName,
			p.CustomerEmail,
			p.CustomerPhone,
			packageNames[p.PackageID],
			p.SessionsTotal,
			p.SessionsRemaining,
			payment.MajorUnits(p.AmountPaid).InexactFloat64(),
			payment.MajorUnits(p.DiscountAmount).InexactFloat64(),
			coupon,
			payment.MajorUnits(p.CommissionAmount).InexactFloat64(),
			p.PaymentMethod,
			p.PaymentStatus,
			p.Status,
		}
		if err := f.SetSheetRow(purchasesSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if len(purchases) > 0 {
		totalRow := len(purchases) + 2
		label, _ := excelize.CoordinatesToCellName(8, totalRow)
		if err := f.SetCellValue(purchasesSheet, label, "Total "+payment.ISOCurrency(currency)); err != nil {
			return nil, err
		}
		for _, col := range []string{"I", "J", "L"} {
			formula := fmt.Sprintf("SUM(%s2:%s%d)", col, col, totalRow-1)
			if err := f.SetCellFormula(purchasesSheet, fmt.Sprintf("%s%d", col, totalRow), formula); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
