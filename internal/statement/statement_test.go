package statement

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/go-petr/edupay/internal/domain"
)

func TestWrite(t *testing.T) {
	s := domain.Statement{
		Account: domain.AccountWithoutSecrets{
			Username: "student1",
			FullName: "Rahul Sharma",
			Profile:  domain.Profile{Course: "B.Tech Computer Science"},
		},
		OpeningBalance: decimal.RequireFromString("150000"),
		Transactions: []domain.Transaction{
			{
				ID:          "A1B2C3D4",
				CreatedAt:   time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
				Description: "Invoice Payment: Activity Fee",
				Amount:      decimal.RequireFromString("-12050"),
				Balance:     decimal.RequireFromString("137950"),
			},
			{
				ID:          "E5F6A7B8",
				CreatedAt:   time.Date(2024, 3, 11, 9, 30, 0, 0, time.UTC),
				Description: "Online Payment via Razorpay",
				Amount:      decimal.RequireFromString("500.5"),
				Balance:     decimal.RequireFromString("138450.5"),
				Gateway:     "razorpay",
			},
		},
		ClosingBalance: decimal.RequireFromString("138450.5"),
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 9)

	require.Equal(t, "Account Statement", rows[0][0])
	require.Equal(t, "Date", rows[4][0])
	require.Equal(t, "150000.00", rows[5][5])
	require.Equal(t, []string{"2024-03-10 12:00", "A1B2C3D4", "Invoice Payment: Activity Fee", "12050.00", "", "137950.00"}, rows[6])
	require.Equal(t, "500.50", rows[7][4])
	require.Equal(t, "razorpay", rows[7][6])
	require.Equal(t, "138450.50", rows[8][5])
}

func TestFilename(t *testing.T) {
	require.Equal(t, "statement_student1.xlsx", Filename("student1"))
}
