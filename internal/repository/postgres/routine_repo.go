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

// pgRoutineRepository implements repository.RoutineRepository.
// Every read and write is scoped by user id so one user can never see
// or touch another user's routines.
type pgRoutineRepository struct {
	db *sqlx.DB
}

func NewRoutineRepository(db *sqlx.DB) repository.RoutineRepository {
	return &pgRoutineRepository{db: db}
}

func (r *pgRoutineRepository) Create(ctx context.Context, routine *domain.Routine) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	routine.CreatedAt = time.Now().UTC()

	var id int64
	if err := tx.GetContext(ctx, &id,
		`INSERT INTO routines (user_id, name, created_at) VALUES ($1, $2, $3) RETURNING id`,
		routine.UserID, routine.Name, routine.CreatedAt); err != nil {
		return 0, err
	}

	for i := range routine.Exercises {
		re := &routine.Exercises[i]
		re.RoutineID = id
		if err := tx.GetContext(ctx, &re.ID,
			`INSERT INTO routine_exercises (routine_id, exercise_id, sets, reps, duration, distance)
			 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			re.RoutineID, re.ExerciseID, re.Sets, re.Reps, re.Duration, re.Distance); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	routine.ID = id
	return id, nil
}

func (r *pgRoutineRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Routine, error) {
	var routine domain.Routine
	query, args, err := psql.Select("*").From("routines").
		Where("id = ?", id).
		Where("user_id = ?", userID).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &routine, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadExercises(ctx, &routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *pgRoutineRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Routine, error) {
	routines := []domain.Routine{}
	query, args, err := psql.Select("*").From("routines").
		Where("user_id = ?", userID).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &routines, query, args...); err != nil {
		return nil, err
	}
	for i := range routines {
		if err := r.loadExercises(ctx, &routines[i]); err != nil {
			return nil, err
		}
	}
	return routines, nil
}

func (r *pgRoutineRepository) FirstByUser(ctx context.Context, userID int64) (*domain.Routine, error) {
	var routine domain.Routine
	query, args, err := psql.Select("*").From("routines").
		Where("user_id = ?", userID).
		OrderBy("created_at").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &routine, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadExercises(ctx, &routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

func (r *pgRoutineRepository) Update(ctx context.Context, routine *domain.Routine, userID int64) error {
	query, args, err := psql.Update("routines").
		Set("name", routine.Name).
		Where("id = ?", routine.ID).
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

func (r *pgRoutineRepository) Delete(ctx context.Context, id, userID int64) error {
	query, args, err := psql.Delete("routines").
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

func (r *pgRoutineRepository) loadExercises(ctx context.Context, routine *domain.Routine) error {
	exercises := []domain.RoutineExercise{}
	query, args, err := psql.Select("*").From("routine_exercises").
		Where("routine_id = ?", routine.ID).
		OrderBy("id").
		ToSql()
	if err != nil {
		return err
	}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return err
	}
	routine.Exercises = exercises
	return nil
}

func (r *pgRoutineRepository) CreateExercise(ctx context.Context, re *domain.RoutineExercise, userID int64) (int64, error) {
	// Ownership of the parent routine is checked in the same statement.
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO routine_exercises (routine_id, exercise_id, sets, reps, duration, distance)
		 SELECT $1, $2, $3, $4, $5, $6
		 WHERE EXISTS (SELECT 1 FROM routines WHERE id = $1 AND user_id = $7)
		 RETURNING id`,
		re.RoutineID, re.ExerciseID, re.Sets, re.Reps, re.Duration, re.Distance, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repository.ErrNotFound
		}
		return 0, err
	}
	re.ID = id
	return id, nil
}

func (r *pgRoutineRepository) GetExerciseByID(ctx context.Context, id, userID int64) (*domain.RoutineExercise, error) {
	var re domain.RoutineExercise
	err := r.db.GetContext(ctx, &re,
		`SELECT re.* FROM routine_exercises re
		 JOIN routines r ON r.id = re.routine_id
		 WHERE re.id = $1 AND r.user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &re, nil
}

func (r *pgRoutineRepository) ListExercisesByUser(ctx context.Context, userID int64) ([]domain.RoutineExercise, error) {
	exercises := []domain.RoutineExercise{}
	err := r.db.SelectContext(ctx, &exercises,
		`SELECT re.* FROM routine_exercises re
		 JOIN routines r ON r.id = re.routine_id
		 WHERE r.user_id = $1
		 ORDER BY re.id`, userID)
	if err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *pgRoutineRepository) UpdateExercise(ctx context.Context, re *domain.RoutineExercise, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE routine_exercises re
		 SET exercise_id = $1, sets = $2, reps = $3, duration = $4, distance = $5
		 FROM routines r
		 WHERE re.id = $6 AND r.id = re.routine_id AND r.user_id = $7`,
		re.ExerciseID, re.Sets, re.Reps, re.Duration, re.Distance, re.ID, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgRoutineRepository) DeleteExercise(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM routine_exercises re
		 USING routines r
		 WHERE re.id = $1 AND r.id = re.routine_id AND r.user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgRoutineRepository) CountExercisesByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM routine_exercises re
		 JOIN routines r ON r.id = re.routine_id
		 WHERE r.user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
