package scoring

import (
	"sort"

	"github.com/mennyg19-cmyk/JustForToday-sub001/internal/core/domain"
)

const (
	weekLabelLayout  = "Jan 2, 06"
	monthLabelLayout = "Jan 06"

	// DefaultMonthlyLookbackDays covers roughly thirteen months.
	DefaultMonthlyLookbackDays = 400
)

// WeeklyLookbackDays is the daily window needed for n week buckets. The extra
// week guarantees the oldest requested week is complete.
func WeeklyLookbackDays(weeks int) int {
	return weeks*7 + 7
}

// MonthlyLookbackDays returns the 400 day window, widened when more months are
// requested than it can hold.
func MonthlyLookbackDays(months int) int {
	return max(DefaultMonthlyLookbackDays, 31*(months+1))
}

// AggregateWeekly buckets a daily series into Sunday-aligned weeks and returns
// the last n buckets, oldest first. Fewer buckets are returned when the series
// is shorter; nothing is padded.
func AggregateWeekly(days []domain.DayScore, n int) []domain.WeekScore {
	buckets, keys := groupDays(days, func(key string) string {
		start, err := domain.WeekStartKey(key)
		if err != nil {
			return ""
		}
		return start
	})

	selected := lastN(keys, n)
	out := make([]domain.WeekScore, 0, len(selected))
	for _, key := range selected {
		out = append(out, domain.WeekScore{
			DateKey: key,
			Score:   bucketAverage(buckets[key]),
			Label:   label(key, weekLabelLayout),
		})
	}
	return out
}

// AggregateMonthly buckets a daily series by calendar month and returns the
// last n buckets, oldest first. Bucket keys are the first of the month.
func AggregateMonthly(days []domain.DayScore, n int) []domain.MonthScore {
	buckets, keys := groupDays(days, func(key string) string {
		if !domain.IsDateKey(key) {
			return ""
		}
		return domain.MonthPrefix(key) + "-01"
	})

	selected := lastN(keys, n)
	out := make([]domain.MonthScore, 0, len(selected))
	for _, key := range selected {
		out = append(out, domain.MonthScore{
			DateKey: key,
			Score:   bucketAverage(buckets[key]),
			Label:   label(key, monthLabelLayout),
		})
	}
	return out
}

// bucketAverage is the unweighted mean score of every day record in a bucket.
// The daily series is dense, so a day with nothing tracked is present with
// score 0 and pulls the mean down, and so does a day before tracking started.
//
// Do not merge this with sparseAverage: drill-downs drop absent days instead,
// and the two numbers are expected to differ for sparse weeks.
func bucketAverage(days []domain.DayScore) int {
	if len(days) == 0 {
		return 0
	}
	sum := 0
	for _, d := range days {
		sum += d.Score
	}
	return round(float64(sum) / float64(len(days)))
}

// TrendDelta is the score change between the last two buckets.
func TrendDelta(weeks []domain.WeekScore) int {
	if len(weeks) < 2 {
		return 0
	}
	return weeks[len(weeks)-1].Score - weeks[len(weeks)-2].Score
}

func groupDays(days []domain.DayScore, bucketKey func(string) string) (map[string][]domain.DayScore, []string) {
	buckets := make(map[string][]domain.DayScore)
	keys := make([]string, 0)
	for _, d := range days {
		key := bucketKey(d.DateKey)
		if key == "" {
			continue
		}
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], d)
	}
	sort.Strings(keys)
	return buckets, keys
}

func lastN(keys []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(keys) <= n {
		return keys
	}
	return keys[len(keys)-n:]
}

func label(key, layout string) string {
	t, err := domain.ParseDateKey(key)
	if err != nil {
		return key
	}
	return t.Format(layout)
}
