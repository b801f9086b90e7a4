// Package period provides the bucketing scheme shared by every
// time-series aggregation: a lookback window per granularity, a
// zero-fill scaffold of ordered bucket keys, and the key function that
// assigns a row timestamp to its bucket.
package period

import (
	"time"

	"github.com/pedopt/admin-backend/pkg/enums"
)

const (
	dailyLookbackDays    = 30
	weeklyLookbackWeeks  = 12
	monthlyLookbackMonths = 12

	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// Start returns the inclusive lower bound of the lookback window for p
// ending at now. Unknown periods fall back to daily.
func Start(p enums.Period, now time.Time) time.Time {
	switch p {
	case enums.PeriodWeekly:
		return now.AddDate(0, 0, -7*weeklyLookbackWeeks)
	case enums.PeriodMonthly:
		return now.AddDate(0, -monthlyLookbackMonths, 0)
	default:
		return now.AddDate(0, 0, -dailyLookbackDays)
	}
}

// Keys returns the ordered bucket keys covering the whole window
// [Start(p, now), now], both endpoints included. Every calendar unit in
// the window gets a key so empty buckets can be emitted as zeros.
func Keys(p enums.Period, now time.Time) []string {
	start := Start(p, now)
	var keys []string
	switch p {
	case enums.PeriodWeekly:
		for cur := weekStart(start); !cur.After(now); cur = cur.AddDate(0, 0, 7) {
			keys = append(keys, cur.Format(dayLayout))
		}
	case enums.PeriodMonthly:
		cur := monthStart(start)
		end := monthStart(now)
		for !cur.After(end) {
			keys = append(keys, cur.Format(monthLayout))
			cur = cur.AddDate(0, 1, 0)
		}
	default:
		for cur := dayStart(start); !cur.After(now); cur = cur.AddDate(0, 0, 1) {
			keys = append(keys, cur.Format(dayLayout))
		}
	}
	return keys
}

// Key buckets ts with the same anchoring Keys uses, so every row
// timestamp inside the window lands on a scaffold key.
func Key(p enums.Period, ts time.Time) string {
	switch p {
	case enums.PeriodWeekly:
		return weekStart(ts).Format(dayLayout)
	case enums.PeriodMonthly:
		return ts.Format(monthLayout)
	default:
		return ts.Format(dayLayout)
	}
}

// weekStart truncates to the Monday of the ISO week containing t.
func weekStart(t time.Time) time.Time {
	t = dayStart(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
