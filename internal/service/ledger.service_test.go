package service

import (
	"strings"
	"testing"
	"time"

	"bistdesk/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ledgerService_RecordTransaction(t *testing.T) {
	t.Run("normalizes the symbol and defaults the date", func(t *testing.T) {
		svc := newTestLedgerService(t)

		before := time.Now().UTC()
		inserted, err := svc.RecordTransaction(domain.Transaction{
			Symbol:    "  thyao ",
			Operation: domain.TransactionOperation_Buy,
			Price:     decimal.NewFromInt(100),
			Quantity:  10,
		})
		require.NoError(t, err)
		require.Equal(t, "THYAO", inserted.Symbol)
		require.NotZero(t, inserted.ID)
		require.False(t, inserted.Date.Before(before))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc := newTestLedgerService(t)

		valid := domain.Transaction{
			Symbol:    "THYAO",
			Operation: domain.TransactionOperation_Buy,
			Price:     decimal.NewFromInt(100),
			Quantity:  10,
		}

		for name, mutate := range map[string]func(tx domain.Transaction) domain.Transaction{
			"blank symbol":      func(tx domain.Transaction) domain.Transaction { tx.Symbol = "   "; return tx },
			"unknown operation": func(tx domain.Transaction) domain.Transaction { tx.Operation = "HOLD"; return tx },
			"zero price":        func(tx domain.Transaction) domain.Transaction { tx.Price = decimal.Zero; return tx },
			"negative price":    func(tx domain.Transaction) domain.Transaction { tx.Price = decimal.NewFromInt(-1); return tx },
			"zero quantity":     func(tx domain.Transaction) domain.Transaction { tx.Quantity = 0; return tx },
			"negative quantity": func(tx domain.Transaction) domain.Transaction { tx.Quantity = -5; return tx },
		} {
			t.Run(name, func(t *testing.T) {
				_, err := svc.RecordTransaction(mutate(valid))
				require.Error(t, err)
				require.True(t, domain.IsValidationError(err), err.Error())
			})
		}

		transactions, err := svc.ListTransactions(nil)
		require.NoError(t, err)
		require.Empty(t, transactions)
	})

	t.Run("sells average against buys", func(t *testing.T) {
		svc := newTestLedgerService(t)

		record := func(op domain.TransactionOperation, price int64, quantity int64, day int) {
			_, err := svc.RecordTransaction(domain.Transaction{
				Symbol:    "GARAN",
				Operation: op,
				Price:     decimal.NewFromInt(price),
				Quantity:  quantity,
				Date:      time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
			})
			require.NoError(t, err)
		}
		record(domain.TransactionOperation_Buy, 40, 100, 1)
		record(domain.TransactionOperation_Buy, 60, 100, 2)
		record(domain.TransactionOperation_Sell, 70, 50, 3)

		positions, err := svc.ListPositions()
		require.NoError(t, err)
		require.Len(t, positions, 1)
		require.Equal(t, int64(150), positions[0].Quantity)
		// 4000 + 6000 - 3500 = 6500 over 150 shares
		require.True(t, positions[0].TotalCost.Equal(decimal.NewFromInt(6500)), positions[0].TotalCost.String())
		require.True(t, positions[0].AverageCost.Round(4).Equal(decimal.NewFromFloat(43.3333)), positions[0].AverageCost.String())
	})
}

func Test_ledgerService_ExportTransactionsCsv(t *testing.T) {
	svc := newTestLedgerService(t)

	_, err := svc.RecordTransaction(domain.Transaction{
		Symbol:    "thyao",
		Operation: domain.TransactionOperation_Buy,
		Price:     decimal.NewFromFloat(319.75),
		Quantity:  10,
		Date:      time.Date(2026, 5, 1, 10, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, svc.ExportTransactionsCsv(&out, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "id,symbol,operation,price,quantity,date", lines[0])
	require.Contains(t, lines[1], "THYAO,BUY,319.75,10,2026-05-01T10:30:00Z")
}

func Test_ledgerService_Watchlist(t *testing.T) {
	svc := newTestLedgerService(t)

	added, err := svc.AddToWatchlist("garan")
	require.NoError(t, err)
	require.True(t, added)

	// same symbol in different case is the same entry
	added, err = svc.AddToWatchlist("GARAN ")
	require.NoError(t, err)
	require.False(t, added)

	entries, err := svc.ListWatchlist()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "GARAN", entries[0].Symbol)

	require.NoError(t, svc.RemoveFromWatchlist("garan"))
	entries, err = svc.ListWatchlist()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func Test_ledgerService_Alarms(t *testing.T) {
	t.Run("creates active alarms and validates input", func(t *testing.T) {
		svc := newTestLedgerService(t)

		alarm, err := svc.CreateAlarm("thyao", decimal.NewFromInt(350), "above")
		require.NoError(t, err)
		require.Equal(t, "THYAO", alarm.Symbol)
		require.Equal(t, domain.AlarmCondition_Above, alarm.Condition)
		require.True(t, alarm.Active)

		_, err = svc.CreateAlarm("thyao", decimal.NewFromInt(350), "sideways")
		require.True(t, domain.IsValidationError(err))

		_, err = svc.CreateAlarm("thyao", decimal.Zero, "above")
		require.True(t, domain.IsValidationError(err))

		_, err = svc.CreateAlarm(" ", decimal.NewFromInt(1), "above")
		require.True(t, domain.IsValidationError(err))
	})

	t.Run("deactivation is idempotent and keeps history", func(t *testing.T) {
		svc := newTestLedgerService(t)

		alarm, err := svc.CreateAlarm("GARAN", decimal.NewFromInt(40), "BELOW")
		require.NoError(t, err)

		require.NoError(t, svc.DeactivateAlarm(alarm.ID))
		require.NoError(t, svc.DeactivateAlarm(alarm.ID))

		active, err := svc.ListAlarms(true)
		require.NoError(t, err)
		require.Empty(t, active)

		all, err := svc.ListAlarms(false)
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.False(t, all[0].Active)
	})
}

func Test_ledgerService_Summary(t *testing.T) {
	svc := newTestLedgerService(t)

	_, err := svc.RecordTransaction(domain.Transaction{
		Symbol: "ASELS", Operation: domain.TransactionOperation_Buy,
		Price: decimal.NewFromInt(60), Quantity: 10,
		Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = svc.RecordTransaction(domain.Transaction{
		Symbol: "ASELS", Operation: domain.TransactionOperation_Sell,
		Price: decimal.NewFromInt(80), Quantity: 10,
		Date: time.Date(2026, 1, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// sold out: no position, but the summary still counts the symbol
	positions, err := svc.ListPositions()
	require.NoError(t, err)
	require.Empty(t, positions)

	summary, err := svc.Summary()
	require.NoError(t, err)
	require.Equal(t, int64(1), summary.DistinctSymbols)
	require.Equal(t, int64(0), summary.TotalShares)
	require.True(t, summary.TotalCost.Equal(decimal.NewFromInt(-200)), summary.TotalCost.String())
}
