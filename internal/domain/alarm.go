package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type AlarmCondition string

const (
	AlarmCondition_Above AlarmCondition = "ABOVE"
	AlarmCondition_Below AlarmCondition = "BELOW"
)

func ParseAlarmCondition(s string) (AlarmCondition, error) {
	switch AlarmCondition(strings.ToUpper(strings.TrimSpace(s))) {
	case AlarmCondition_Above:
		return AlarmCondition_Above, nil
	case AlarmCondition_Below:
		return AlarmCondition_Below, nil
	}
	return "", fmt.Errorf("unknown alarm condition %q", s)
}

// Alarm is a one-shot price threshold. It is created active, flips to
// inactive exactly once when the condition is met, and is never deleted.
type Alarm struct {
	ID          int64
	Symbol      string
	TargetPrice decimal.Decimal
	Condition   AlarmCondition
	Active      bool
	CreatedAt   time.Time
}

// Triggered reports whether the alarm condition is satisfied at price.
// Both boundaries are inclusive: ABOVE fires at price >= target and
// BELOW fires at price <= target.
func (a Alarm) Triggered(price decimal.Decimal) bool {
	switch a.Condition {
	case AlarmCondition_Above:
		return price.GreaterThanOrEqual(a.TargetPrice)
	case AlarmCondition_Below:
		return price.LessThanOrEqual(a.TargetPrice)
	}
	return false
}

// TriggeredAlarm pairs a fired alarm with the price that fired it.
type TriggeredAlarm struct {
	Alarm
	CurrentPrice decimal.Decimal
}
