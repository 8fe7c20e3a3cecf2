package usecase

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"gh-contrib-api/internal/domain"
)

// Summarize derives the aggregate statistics for a date-sorted contribution
// sequence. It returns nil for an empty sequence so callers can serialize the
// absence of statistics instead of dividing by zero.
func Summarize(contributions []domain.Contribution) (*domain.Statistics, error) {
	if len(contributions) == 0 {
		return nil, nil
	}

	counts := make(stats.Float64Data, len(contributions))
	total := 0
	for i, c := range contributions {
		counts[i] = float64(c.Count)
		total += c.Count
	}

	mean, err := stats.Mean(counts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute mean: %w", err)
	}
	mean, err = stats.Round(mean, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to round mean: %w", err)
	}
	median, err := stats.Median(counts)
	if err != nil {
		return nil, fmt.Errorf("failed to compute median: %w", err)
	}

	maxDay := contributions[0]
	active := 0
	for _, c := range contributions {
		if c.Count > maxDay.Count {
			maxDay = c
		}
		if c.Count > 0 {
			active++
		}
	}

	return &domain.Statistics{
		Total:      total,
		Mean:       mean,
		Median:     median,
		MaxDay:     &maxDay,
		Streak:     longestStreak(contributions),
		ActiveDays: active,
		Inactive:   len(contributions) - active,
	}, nil
}

// longestStreak scans the sequence once, counting runs of positive-count
// records. A record that is adjacent in the sorted sequence counts as
// continuing the run even if its calendar date is not the next day.
func longestStreak(contributions []domain.Contribution) domain.Streak {
	var current, longest int
	var endDate string
	for _, c := range contributions {
		if c.Count > 0 {
			current++
			if current > longest {
				longest = current
				endDate = c.Date
			}
		} else {
			current = 0
		}
	}
	return domain.Streak{Length: longest, EndDate: endDate}
}
