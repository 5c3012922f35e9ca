package api

import (
	"fmt"
	"time"

	"bistdesk/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type alarmResponse struct {
	ID          int64           `json:"id"`
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Condition   string          `json:"condition"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toAlarmResponse(a domain.Alarm) alarmResponse {
	return alarmResponse{
		ID:          a.ID,
		Symbol:      a.Symbol,
		TargetPrice: a.TargetPrice,
		Condition:   string(a.Condition),
		Active:      a.Active,
		CreatedAt:   a.CreatedAt,
	}
}

type createAlarmRequest struct {
	Symbol      string          `json:"symbol"`
	TargetPrice decimal.Decimal `json:"targetPrice"`
	Condition   string          `json:"condition"`
}

func (m ApiHandler) createAlarm(c *gin.Context) {
	var requestBody createAlarmRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}

	alarm, err := m.LedgerService.CreateAlarm(requestBody.Symbol, requestBody.TargetPrice, requestBody.Condition)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, toAlarmResponse(*alarm))
}

// listAlarms returns active alarms by default; pass ?active=false to
// include resolved ones.
func (m ApiHandler) listAlarms(c *gin.Context) {
	activeOnly := c.DefaultQuery("active", "true") != "false"

	alarms, err := m.LedgerService.ListAlarms(activeOnly)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]alarmResponse, len(alarms))
	for i, a := range alarms {
		out[i] = toAlarmResponse(a)
	}

	c.JSON(200, out)
}

type triggeredAlarmResponse struct {
	alarmResponse
	CurrentPrice decimal.Decimal `json:"currentPrice"`
}

func (m ApiHandler) checkAlarms(c *gin.Context) {
	triggered, err := m.AlarmService.Sweep()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := make([]triggeredAlarmResponse, len(triggered))
	for i, t := range triggered {
		out[i] = triggeredAlarmResponse{
			alarmResponse: toAlarmResponse(t.Alarm),
			CurrentPrice:  t.CurrentPrice,
		}
	}

	c.JSON(200, out)
}
