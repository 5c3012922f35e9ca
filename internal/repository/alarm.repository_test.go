package repository

import (
	"testing"
	"time"

	"bistdesk/internal/domain"
	"bistdesk/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_alarmRepository(t *testing.T) {
	t.Run("deactivated alarms are kept but filtered from active list", func(t *testing.T) {
		db, err := util.NewTestDb()
		require.NoError(t, err)
		defer db.Close()
		repo := NewAlarmRepository(db)

		first, err := repo.Add(domain.Alarm{Symbol: "THYAO", TargetPrice: decimal.NewFromInt(300), Condition: domain.AlarmCondition_Above, CreatedAt: time.Now()})
		require.NoError(t, err)
		require.True(t, first.Active)

		_, err = repo.Add(domain.Alarm{Symbol: "GARAN", TargetPrice: decimal.NewFromInt(40), Condition: domain.AlarmCondition_Below, CreatedAt: time.Now()})
		require.NoError(t, err)

		require.NoError(t, repo.Deactivate(first.ID))
		// deactivating twice must not error
		require.NoError(t, repo.Deactivate(first.ID))

		active, err := repo.List(true)
		require.NoError(t, err)
		require.Len(t, active, 1)
		require.Equal(t, "GARAN", active[0].Symbol)

		all, err := repo.List(false)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})
}
