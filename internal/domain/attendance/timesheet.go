package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClockLayout is the wall-clock format attendance stores, minute
// resolution without a date or zone.
const ClockLayout = "15:04"

// ParseClock parses an "HH:MM" wall-clock string. Malformed input
// returns ErrInvalidClockTime; callers record zero hours instead of
// failing the attendance write.
func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidClockTime
	}
	return t, nil
}

// WorkedDuration returns the elapsed time between two wall-clock
// strings. A checkout earlier than the checkin is treated as the next
// day, so an overnight 22:00 to 02:00 shift yields 4 hours. The result
// is never negative.
func WorkedDuration(checkIn, checkOut string) (time.Duration, error) {
	in, err := ParseClock(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseClock(checkOut)
	if err != nil {
		return 0, err
	}

	if out.Before(in) {
		out = out.Add(24 * time.Hour)
	}
	return out.Sub(in), nil
}

// Hours converts a duration to decimal hours at minute resolution,
// rounded to two decimal places.
func Hours(d time.Duration) decimal.Decimal {
	minutes := int64(d / time.Minute)
	return decimal.NewFromInt(minutes).Div(decimal.NewFromInt(60)).Round(2)
}

// OvertimeHours is the single derivation of overtime used everywhere:
// hours worked beyond the standard shift, floored at zero.
func OvertimeHours(worked decimal.Decimal, standardShiftHours int) decimal.Decimal {
	overtime := worked.Sub(decimal.NewFromInt(int64(standardShiftHours)))
	if overtime.IsNegative() {
		return decimal.Zero
	}
	return overtime
}
