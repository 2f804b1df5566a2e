package scenario

import (
	"errors"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var ErrNoCalendarPeriods = errors.New("no time points to build calendar profile")

// NewUSBusinessCalendar returns a business calendar observing US federal
// holidays.
func NewUSBusinessCalendar() *cal.BusinessCalendar {
	c := cal.NewBusinessCalendar()
	c.AddHoliday(us.Holidays...)
	return c
}

// BusinessDayProfile builds a multiplier path from the number of working
// days in each forecast month, normalized so the multipliers average to
// 1. Cash movement tends to scale with working days, so months with a
// holiday-shortened calendar are scaled down relative to the mean. The
// time points are the forecast horizon's month-start timestamps.
func BusinessDayProfile(name string, t []time.Time, c *cal.BusinessCalendar, varianceAdjustment float64) (Profile, error) {
	if len(t) == 0 {
		return Profile{}, ErrNoCalendarPeriods
	}
	if c == nil {
		c = NewUSBusinessCalendar()
	}

	workdays := make([]float64, len(t))
	var sum float64
	for i, pnt := range t {
		monthStart := time.Date(pnt.Year(), pnt.Month(), 1, 0, 0, 0, 0, pnt.Location())
		monthEnd := monthStart.AddDate(0, 1, -1)
		workdays[i] = float64(c.WorkdaysInRange(monthStart, monthEnd))
		sum += workdays[i]
	}

	mean := sum / float64(len(t))
	multipliers := make([]float64, len(t))
	for i := range workdays {
		multipliers[i] = workdays[i] / mean
	}
	return NewPathProfile(name, multipliers, varianceAdjustment), nil
}
