package timeseries

import "time"

// Frequency classifies the observed spacing of a series. Monthly and
// quarterly intervals vary in length so classification works on duration
// ranges rather than exact matches.
type Frequency int

const (
	Unknown Frequency = iota
	Hourly
	Daily
	Weekly
	Monthly
	Quarterly
)

func (f Frequency) String() string {
	switch f {
	case Hourly:
		return "hourly"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	}
	return "unknown"
}

// DefaultPeriod returns the natural seasonal period for a frequency,
// e.g. 12 for monthly data with a yearly cycle or 7 for daily data with
// a weekly cycle. Returns 0 when no natural period exists.
func (f Frequency) DefaultPeriod() int {
	switch f {
	case Hourly:
		return 24
	case Daily:
		return 7
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Quarterly:
		return 4
	}
	return 0
}

// Frequency classifies the series interval estimated by EstimateFreq.
func (ts *TimeSeries) Frequency() (Frequency, error) {
	delta, err := ts.EstimateFreq()
	if err != nil {
		return Unknown, err
	}
	return classifyInterval(delta), nil
}

func classifyInterval(delta time.Duration) Frequency {
	day := 24 * time.Hour
	switch {
	case delta >= 59*time.Minute && delta <= 61*time.Minute:
		return Hourly
	case delta >= 23*time.Hour && delta <= 25*time.Hour:
		return Daily
	case delta >= 6*day && delta <= 8*day:
		return Weekly
	case delta >= 28*day && delta <= 31*day:
		return Monthly
	case delta >= 89*day && delta <= 92*day:
		return Quarterly
	}
	return Unknown
}
