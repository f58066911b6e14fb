package service

import (
	"context"
	"errors"
	"time"

	"fittrack/internal/repository"
)

// --- Error Definitions ---
var (
	ErrInvalidDateRange = errors.New("start date must not be after end date")
)

// defaultProgressWindow is the range used when the caller gives none:
// the last 30 days through today.
const defaultProgressWindow = 30 * 24 * time.Hour

// DailyProgress is one day's bucket of the progress report. Buckets
// with no workouts report zeros, never missing fields.
type DailyProgress struct {
	Date           string `json:"date"`
	Workouts       int    `json:"workouts"`
	Exercises      int    `json:"exercises"`
	TotalMinutes   int64  `json:"totalMinutes"`
	CaloriesBurned int    `json:"caloriesBurned"`
}

// WeeklyProgress is one Monday-aligned week bucket.
type WeeklyProgress struct {
	WeekStart string `json:"weekStart"`
	Workouts  int    `json:"workouts"`
	Exercises int    `json:"exercises"`
}

// ProgressSummary aggregates the whole range.
type ProgressSummary struct {
	TotalWorkouts     int              `json:"totalWorkouts"`
	TotalExercises    int              `json:"totalExercises"`
	TotalMinutes      int64            `json:"totalMinutes"`
	TotalCalories     int              `json:"totalCalories"`
	WorkoutsByRoutine map[string]int   `json:"workoutsByRoutine"`
	Weekly            []WeeklyProgress `json:"weekly"`
}

// ProgressReport is the full response of the progress endpoint.
type ProgressReport struct {
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Daily     []DailyProgress `json:"daily"`
	Summary   ProgressSummary `json:"summary"`
}

// ProgressService computes per-day and per-week summaries over a
// user's completed-workout history.
type ProgressService interface {
	// Report aggregates the user's workouts with start times inside
	// [start, end]. Zero start/end fall back to the last 30 days
	// through today.
	Report(ctx context.Context, userID int64, start, end time.Time) (*ProgressReport, error)
}

type progressService struct {
	workoutRepo repository.WorkoutRepository
	now         func() time.Time
}

func NewProgressService(workoutRepo repository.WorkoutRepository) ProgressService {
	return &progressService{
		workoutRepo: workoutRepo,
		now:         time.Now,
	}
}

func (s *progressService) Report(ctx context.Context, userID int64, start, end time.Time) (*ProgressReport, error) {
	if end.IsZero() {
		end = s.now().UTC()
	}
	if start.IsZero() {
		start = end.Add(-defaultProgressWindow)
	}

	startDay := truncateToDay(start)
	endDay := truncateToDay(end)
	if startDay.After(endDay) {
		return nil, ErrInvalidDateRange
	}

	// The query window covers the whole last day.
	summaries, err := s.workoutRepo.ListSummariesBetween(ctx, userID, startDay, endDay.Add(24*time.Hour-time.Nanosecond))
	if err != nil {
		return nil, err
	}

	daily := map[string]*DailyProgress{}
	weekly := map[string]*WeeklyProgress{}
	summary := ProgressSummary{
		WorkoutsByRoutine: map[string]int{},
	}

	for _, w := range summaries {
		day := truncateToDay(w.StartedAt).Format("2006-01-02")
		week := mondayOf(w.StartedAt).Format("2006-01-02")
		minutes := w.DurationSeconds / 60 // whole minutes, floor

		if bucket, ok := daily[day]; ok {
			bucket.Workouts++
			bucket.Exercises += w.ExerciseCount
			bucket.TotalMinutes += minutes
			bucket.CaloriesBurned += w.CaloriesBurned
		} else {
			daily[day] = &DailyProgress{
				Date:           day,
				Workouts:       1,
				Exercises:      w.ExerciseCount,
				TotalMinutes:   minutes,
				CaloriesBurned: w.CaloriesBurned,
			}
		}

		if bucket, ok := weekly[week]; ok {
			bucket.Workouts++
			bucket.Exercises += w.ExerciseCount
		} else {
			weekly[week] = &WeeklyProgress{WeekStart: week, Workouts: 1, Exercises: w.ExerciseCount}
		}

		summary.TotalWorkouts++
		summary.TotalExercises += w.ExerciseCount
		summary.TotalMinutes += minutes
		summary.TotalCalories += w.CaloriesBurned
		summary.WorkoutsByRoutine[w.RoutineName]++
	}

	report := &ProgressReport{
		StartDate: startDay.Format("2006-01-02"),
		EndDate:   endDay.Format("2006-01-02"),
		Summary:   summary,
	}

	// Emit a bucket for every day of the range, zeros included.
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if bucket, ok := daily[key]; ok {
			report.Daily = append(report.Daily, *bucket)
		} else {
			report.Daily = append(report.Daily, DailyProgress{Date: key})
		}
	}

	// Same for weeks: every Monday-aligned week intersecting the range
	// is present even when empty.
	for week := mondayOf(startDay); !week.After(endDay); week = week.AddDate(0, 0, 7) {
		key := week.Format("2006-01-02")
		if bucket, ok := weekly[key]; ok {
			report.Summary.Weekly = append(report.Summary.Weekly, *bucket)
		} else {
			report.Summary.Weekly = append(report.Summary.Weekly, WeeklyProgress{WeekStart: key})
		}
	}

	return report, nil
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// mondayOf returns the Monday starting the ISO week containing t.
func mondayOf(t time.Time) time.Time {
	day := truncateToDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}
