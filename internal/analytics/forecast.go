package analytics

import (
	"math"
	"time"

	"github.com/peoplepulse/peoplepulse/internal/domain"
)

const (
	// DefaultAlpha is the exponential smoothing factor. Lower values weight
	// history more, higher values track recent observations aggressively.
	DefaultAlpha = 0.3

	// Z95 and Z90 are the z-scores for the supported confidence levels.
	Z95 = 1.96
	Z90 = 1.645

	// MethodExponentialSmoothing names the only implemented forecast method.
	MethodExponentialSmoothing = "exponential_smoothing"

	daysPerWeek           = 7
	stableChangeThreshold = 5.0
)

// ExponentialSmoothing returns the smoothed series: S[0] = values[0],
// S[t] = alpha*values[t] + (1-alpha)*S[t-1].
func ExponentialSmoothing(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	smoothed := make([]float64, len(values))
	smoothed[0] = values[0]
	for t := 1; t < len(values); t++ {
		smoothed[t] = alpha*values[t] + (1-alpha)*smoothed[t-1]
	}
	return smoothed
}

// AnalyzeTrend splits the series at its midpoint and compares half means.
// Fewer than two points yields the degenerate stable trend, never an error.
func AnalyzeTrend(values []float64) domain.TrendSummary {
	if len(values) < 2 {
		return domain.TrendSummary{Direction: domain.TrendStable}
	}

	mid := len(values) / 2
	firstAvg := mean(values[:mid])
	secondAvg := mean(values[mid:])

	var changePct float64
	if firstAvg != 0 {
		changePct = (secondAvg - firstAvg) / firstAvg * 100
	}

	direction := domain.TrendStable
	if math.Abs(changePct) >= stableChangeThreshold {
		if changePct > 0 {
			direction = domain.TrendIncreasing
		} else {
			direction = domain.TrendDecreasing
		}
	}

	return domain.TrendSummary{
		Direction: direction,
		Slope:     (secondAvg - firstAvg) / float64(mid),
		ChangePct: changePct,
	}
}

// ForecastWithConfidence smooths the historical series, extrapolates a local
// trend at daily granularity, attaches a confidence band derived from the
// historical relative variance, and rolls the daily projection up into one
// averaged point per forecast week.
//
// The band reuses one global relative margin (z*stdev expressed as a share
// of the historical mean) for every forecast point instead of a per-point
// error-accretion model; that is intentional for short horizons.
func ForecastWithConfidence(dates []time.Time, values []float64, forecastWeeks int, alpha, z float64) domain.ForecastResult {
	result := domain.ForecastResult{Method: MethodExponentialSmoothing}

	result.Historical = make([]domain.HistoricalPoint, 0, len(values))
	for i, v := range values {
		result.Historical = append(result.Historical, domain.HistoricalPoint{Date: dates[i], Value: v})
	}

	if len(values) == 0 || forecastWeeks <= 0 {
		result.Trend = AnalyzeTrend(values)
		return result
	}

	smoothed := ExponentialSmoothing(values, alpha)
	last := smoothed[len(smoothed)-1]

	// Local trend over the last three smoothed points; 0 when the series is
	// too short to measure one.
	var trend float64
	if len(smoothed) >= 3 {
		trend = (smoothed[len(smoothed)-1] - smoothed[len(smoothed)-3]) / 2
	}

	marginPct := relativeMargin(values, z)

	lastDate := dates[len(dates)-1]
	horizon := forecastWeeks * daysPerWeek
	daily := make([]domain.ForecastPoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		value := math.Max(0, last+trend*float64(i))
		daily = append(daily, domain.ForecastPoint{
			Date:       lastDate.AddDate(0, 0, i),
			Value:      value,
			LowerBound: math.Max(0, value-value*marginPct),
			UpperBound: value + value*marginPct,
		})
	}

	result.Forecast = weeklyRollup(daily)
	result.Trend = AnalyzeTrend(values)
	return result
}

// relativeMargin returns z*stdev expressed as a fraction of the historical
// mean, or 0 when the mean is zero.
func relativeMargin(values []float64, z float64) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return z * stddev(values, m) / m
}

// weeklyRollup groups daily points into buckets of seven and averages each
// bucket. The bucket takes the date of its last day.
func weeklyRollup(daily []domain.ForecastPoint) []domain.ForecastPoint {
	weeks := make([]domain.ForecastPoint, 0, (len(daily)+daysPerWeek-1)/daysPerWeek)
	for start := 0; start < len(daily); start += daysPerWeek {
		end := start + daysPerWeek
		if end > len(daily) {
			end = len(daily)
		}
		bucket := daily[start:end]

		var value, lower, upper float64
		for _, p := range bucket {
			value += p.Value
			lower += p.LowerBound
			upper += p.UpperBound
		}
		n := float64(len(bucket))
		weeks = append(weeks, domain.ForecastPoint{
			Date:       bucket[len(bucket)-1].Date,
			Value:      value / n,
			LowerBound: lower / n,
			UpperBound: upper / n,
		})
	}
	return weeks
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sq float64
	for _, v := range values {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)))
}
