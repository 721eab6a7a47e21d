package report

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ecomdata/internal/generate"
	"ecomdata/internal/model"
	"ecomdata/internal/money"
	"ecomdata/internal/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func loadedDB(t *testing.T, ds model.Dataset) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	db, err := store.Open(store.Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "ecom.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(db) })
	require.NoError(t, store.Migrate(ctx, db))
	require.NoError(t, store.Reload(ctx, db, ds))
	return db
}

func generated(t *testing.T) model.Dataset {
	t.Helper()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	ds, err := generate.New(generate.NewSource(42), now).Generate(generate.DefaultCounts)
	require.NoError(t, err)
	return ds
}

func TestFetchReproducesGeneratedOrders(t *testing.T) {
	ds := generated(t)
	rows, err := Fetch(context.Background(), loadedDB(t, ds))
	require.NoError(t, err)
	require.Len(t, rows, len(ds.OrderItems))

	orders := map[int]model.Order{}
	for _, o := range ds.Orders {
		orders[o.OrderID] = o
	}
	type line struct {
		qty   int
		price money.Money
	}
	want := map[int][]line{}
	for _, it := range ds.OrderItems {
		want[it.OrderID] = append(want[it.OrderID], line{it.Quantity, it.UnitPrice})
	}
	got := map[int][]line{}
	for _, r := range rows {
		got[r.OrderID] = append(got[r.OrderID], line{r.Quantity, r.UnitPrice})
		assert.Equal(t, orders[r.OrderID].TotalAmount, r.TotalAmount)
		assert.Equal(t, orders[r.OrderID].UserID, r.UserID)
		assert.NotEqual(t, NotAvailable, r.PaymentStatus)
	}
	assert.Equal(t, want, got)
}

func TestFetchOrdering(t *testing.T) {
	rows, err := Fetch(context.Background(), loadedDB(t, generated(t)))
	require.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		ok := prev.UserID < cur.UserID ||
			(prev.UserID == cur.UserID && prev.OrderID <= cur.OrderID)
		assert.True(t, ok, "row %d out of order: %+v then %+v", i, prev, cur)
	}
}

func TestFetchMissingPaymentIsNA(t *testing.T) {
	ds := generated(t)
	dropped := ds.Payments[0].OrderID
	ds.Payments = ds.Payments[1:]

	rows, err := Fetch(context.Background(), loadedDB(t, ds))
	require.NoError(t, err)
	seen := false
	for _, r := range rows {
		if r.OrderID == dropped {
			seen = true
			assert.Equal(t, NotAvailable, r.PaymentStatus)
			assert.Equal(t, NotAvailable, r.PaymentMethod)
		}
	}
	assert.True(t, seen)
}

func TestFetchEmptyStore(t *testing.T) {
	_, err := Fetch(context.Background(), loadedDB(t, model.Dataset{}))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestFetchFromNumericStringDriver(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := store.OpenDialector(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM order_items").WillReturnRows(
		sqlmock.NewRows(Headers).
			AddRow(1, "Ada Byrne", 3, "Drift Lamp", 2, "12.5", "25.00", "Completed", "PayPal"),
	)
	rows, err := Fetch(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12.50", rows[0].UnitPrice.String())
	assert.Equal(t, "25.00", rows[0].Cells()[6])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchQueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := store.OpenDialector(postgres.New(postgres.Config{Conn: sqlDB}))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM order_items").WillReturnError(errors.New("relation \"order_items\" does not exist"))
	_, err = Fetch(context.Background(), db)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "report query")
}

func TestRenderGolden(t *testing.T) {
	rows := []Row{
		{UserID: 1, Name: "Ada Byrne", OrderID: 2, ProductName: "Drift Lamp", Quantity: 3, UnitPrice: money.MustParse("5.05"), TotalAmount: money.MustParse("15.15"), PaymentStatus: "Completed", PaymentMethod: "PayPal"},
		{UserID: 10, Name: "Jo", OrderID: 11, ProductName: "Summit Standing Desk", Quantity: 1, UnitPrice: money.MustParse("1100"), TotalAmount: money.MustParse("1100"), PaymentStatus: NotAvailable, PaymentMethod: NotAvailable},
	}
	want := strings.Join([]string{
		"user_id | name      | order_id | product_name         | quantity | unit_price | total_amount | payment_status | payment_method",
		"--------+-----------+----------+----------------------+----------+------------+--------------+----------------+---------------",
		"1       | Ada Byrne | 2        | Drift Lamp           | 3        | 5.05       | 15.15        | Completed      | PayPal        ",
		"10      | Jo        | 11       | Summit Standing Desk | 1        | 1100.00    | 1100.00      | N/A            | N/A           ",
	}, "\n")
	assert.Equal(t, want, Render(rows))
}

func TestFormatTableWidensToCells(t *testing.T) {
	got := FormatTable([]string{"a", "bb"}, [][]string{{"ccc", "d"}, {"é", "ff"}})
	want := "a   | bb\n----+---\nccc | d \né   | ff"
	assert.Equal(t, want, got)
}

func TestFormatTableHeaderOnly(t *testing.T) {
	assert.Equal(t, "x | yy\n--+---", FormatTable([]string{"x", "yy"}, nil))
}
