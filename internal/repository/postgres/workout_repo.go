package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// pgWorkoutRepository implements repository.WorkoutRepository.
type pgWorkoutRepository struct {
	db *sqlx.DB
}

func NewWorkoutRepository(db *sqlx.DB) repository.WorkoutRepository {
	return &pgWorkoutRepository{db: db}
}

func (r *pgWorkoutRepository) Create(ctx context.Context, workout *domain.CompletedWorkout) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.GetContext(ctx, &id,
		`INSERT INTO completed_workouts
		 (user_id, routine_id, started_at, completed_at, duration_seconds, calories_burned, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		workout.UserID, workout.RoutineID, workout.StartedAt, workout.CompletedAt,
		workout.DurationSeconds, workout.CaloriesBurned, workout.Notes); err != nil {
		return 0, err
	}

	for i := range workout.Exercises {
		ce := &workout.Exercises[i]
		ce.CompletedWorkoutID = id
		if err := tx.GetContext(ctx, &ce.ID,
			`INSERT INTO completed_exercises
			 (completed_workout_id, routine_exercise_id, sets_completed, reps_completed,
			  duration_completed, distance_completed, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
			ce.CompletedWorkoutID, ce.RoutineExerciseID, ce.SetsCompleted, ce.RepsCompleted,
			ce.DurationCompleted, ce.DistanceCompleted, ce.Notes); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	workout.ID = id
	return id, nil
}

func (r *pgWorkoutRepository) GetByID(ctx context.Context, id, userID int64) (*domain.CompletedWorkout, error) {
	var workout domain.CompletedWorkout
	query, args, err := psql.Select("*").From("completed_workouts").
		Where("id = ?", id).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &workout, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	exercises := []domain.CompletedExercise{}
	if err := r.db.SelectContext(ctx, &exercises,
		`SELECT * FROM completed_exercises WHERE completed_workout_id = $1 ORDER BY id`, id); err != nil {
		return nil, err
	}
	workout.Exercises = exercises
	return &workout, nil
}

func (r *pgWorkoutRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CompletedWorkout, error) {
	workouts := []domain.CompletedWorkout{}
	query, args, err := psql.Select("*").From("completed_workouts").
		Where("user_id = ?", userID).
		OrderBy("started_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &workouts, query, args...); err != nil {
		return nil, err
	}
	return workouts, nil
}

func (r *pgWorkoutRepository) Delete(ctx context.Context, id, userID int64) error {
	query, args, err := psql.Delete("completed_workouts").
		Where("id = ?", id).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgWorkoutRepository) CreateExercise(ctx context.Context, ce *domain.CompletedExercise, userID int64) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO completed_exercises
		 (completed_workout_id, routine_exercise_id, sets_completed, reps_completed,
		  duration_completed, distance_completed, notes)
		 SELECT $1, $2, $3, $4, $5, $6, $7
		 WHERE EXISTS (SELECT 1 FROM completed_workouts WHERE id = $1 AND user_id = $8)
		 RETURNING id`,
		ce.CompletedWorkoutID, ce.RoutineExerciseID, ce.SetsCompleted, ce.RepsCompleted,
		ce.DurationCompleted, ce.DistanceCompleted, ce.Notes, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	ce.ID = id
	return id, nil
}

func (r *pgWorkoutRepository) ListExercisesByUser(ctx context.Context, userID int64) ([]domain.CompletedExercise, error) {
	exercises := []domain.CompletedExercise{}
	err := r.db.SelectContext(ctx, &exercises,
		`SELECT ce.* FROM completed_exercises ce
		 JOIN completed_workouts cw ON cw.id = ce.completed_workout_id
		 WHERE cw.user_id = $1
		 ORDER BY ce.id`, userID)
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *pgWorkoutRepository) UpdateExercise(ctx context.Context, ce *domain.CompletedExercise, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE completed_exercises ce
		 SET sets_completed = $1, reps_completed = $2, duration_completed = $3,
		     distance_completed = $4, notes = $5
		 FROM completed_workouts cw
		 WHERE ce.id = $6 AND cw.id = ce.completed_workout_id AND cw.user_id = $7`,
		ce.SetsCompleted, ce.RepsCompleted, ce.DurationCompleted, ce.DistanceCompleted,
		ce.Notes, ce.ID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgWorkoutRepository) DeleteExercise(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM completed_exercises ce
		 USING completed_workouts cw
		 WHERE ce.id = $1 AND cw.id = ce.completed_workout_id AND cw.user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgWorkoutRepository) CountExercisesCompletedOn(ctx context.Context, userID int64, date time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM completed_exercises ce
		 JOIN completed_workouts cw ON cw.id = ce.completed_workout_id
		 WHERE cw.user_id = $1 AND cw.completed_at::date = $2`,
		userID, date.Format("2006-01-02"))
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *pgWorkoutRepository) ListSummariesBetween(ctx context.Context, userID int64, from, to time.Time) ([]domain.WorkoutSummary, error) {
	summaries := []domain.WorkoutSummary{}
	err := r.db.SelectContext(ctx, &summaries,
		`SELECT cw.id,
		        r.name AS routine_name,
		        cw.started_at,
		        cw.duration_seconds,
		        cw.calories_burned,
		        count(ce.id) AS exercise_count
		 FROM completed_workouts cw
		 JOIN routines r ON r.id = cw.routine_id
		 LEFT JOIN completed_exercises ce ON ce.completed_workout_id = cw.id
		 WHERE cw.user_id = $1 AND cw.started_at >= $2 AND cw.started_at <= $3
		 GROUP BY cw.id, r.name
		 ORDER BY cw.started_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
