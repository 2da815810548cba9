package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

func TestPurchasesXLSX(t *testing.T) {
	code := "AFFILIATE10"
	purchases := []models.Purchase{
		{
			ID:                "p1",
			PackageID:         "pkg-4",
			CustomerName:      "Jane",
			CustomerEmail:     "jane@example.com",
			CustomerPhone:     "+254700000000",
			AmountPaid:        1350000,
			DiscountAmount:    150000,
			CommissionAmount:  67500,
			CouponCode:        &code,
			SessionsTotal:     4,
			SessionsRemaining: 3,
			PaymentMethod:     "mpesa",
			PaymentStatus:     "completed",
			Status:            "active",
			CreatedAt:         time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:            "p2",
			PackageID:     "pkg-1",
			CustomerName:  "John",
			AmountPaid:    500000,
			PaymentMethod: "cash",
			Status:        "completed",
			CreatedAt:     time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		},
	}

	out, err := PurchasesXLSX(purchases, map[string]string{"pkg-4": "4 Sessions"}, "KSh")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{purchasesSheet}, f.GetSheetList())

	rows, err := f.GetRows(purchasesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, PurchasesHeader, rows[0])
	assert.Equal(t, "p1", rows[1][0])
	assert.Equal(t, "4 Sessions", rows[1][5])
	assert.Equal(t, "13500", rows[1][8])
	assert.Equal(t, "AFFILIATE10", rows[1][10])
	assert.Equal(t, "", rows[2][5])

	formula, err := f.GetCellFormula(purchasesSheet, "I4")
	require.NoError(t, err)
	assert.Equal(t, "SUM(I2:I3)", formula)

	label, err := f.GetCellValue(purchasesSheet, "H4")
	require.NoError(t, err)
	assert.Equal(t, "Total KES", label)
}

func TestPurchasesXLSX_Empty(t *testing.T) {
	out, err := PurchasesXLSX(nil, nil, "KSh")
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(purchasesSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
