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

// pgMuscleGroupRepository implements repository.MuscleGroupRepository.
type pgMuscleGroupRepository struct {
	db *sqlx.DB
}

func NewMuscleGroupRepository(db *sqlx.DB) repository.MuscleGroupRepository {
	return &pgMuscleGroupRepository{db: db}
}

func (r *pgMuscleGroupRepository) Create(ctx context.Context, mg *domain.MuscleGroup) (int64, error) {
	query, args, err := psql.Insert("muscle_groups").
		Columns("name").
		Values(mg.Name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrConflict
		}
		return 0, err
	}
	mg.ID = id
	return id, nil
}

func (r *pgMuscleGroupRepository) GetByID(ctx context.Context, id int64) (*domain.MuscleGroup, error) {
	var mg domain.MuscleGroup
	query, args, err := psql.Select("*").From("muscle_groups").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &mg, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &mg, nil
}

func (r *pgMuscleGroupRepository) List(ctx context.Context) ([]domain.MuscleGroup, error) {
	groups := []domain.MuscleGroup{}
	query, args, err := psql.Select("*").From("muscle_groups").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *pgMuscleGroupRepository) Update(ctx context.Context, mg *domain.MuscleGroup) error {
	query, args, err := psql.Update("muscle_groups").
		Set("name", mg.Name).
		Where("id = ?", mg.ID).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return requireRow(res)
}

func (r *pgMuscleGroupRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("muscle_groups").Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgMuscleGroupRepository) UpsertByName(ctx context.Context, name string) (int64, error) {
	// ON CONFLICT DO UPDATE so the id comes back for both branches.
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO muscle_groups (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`, name)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// pgExerciseRepository implements repository.ExerciseRepository.
type pgExerciseRepository struct {
	db *sqlx.DB
}

func NewExerciseRepository(db *sqlx.DB) repository.ExerciseRepository {
	return &pgExerciseRepository{db: db}
}

func (r *pgExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	query, args, err := psql.Insert("exercises").
		Columns("name", "muscle_group_id", "description", "exercise_type").
		Values(exercise.Name, exercise.MuscleGroupID, exercise.Description, exercise.Type).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrConflict
		}
		return 0, err
	}
	exercise.ID = id
	return id, nil
}

func (r *pgExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	var exercise domain.Exercise
	query, args, err := psql.Select("*").From("exercises").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &exercise, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

func (r *pgExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	query, args, err := psql.Select("*").From("exercises").OrderBy("name").ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *pgExerciseRepository) ListByType(ctx context.Context, t domain.ExerciseType) ([]domain.Exercise, error) {
	exercises := []domain.Exercise{}
	query, args, err := psql.Select("*").From("exercises").
		Where("exercise_type = ?", t).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, err
	}
	return exercises, nil
}

func (r *pgExerciseRepository) Update(ctx context.Context, exercise *domain.Exercise) error {
	query, args, err := psql.Update("exercises").
		Set("name", exercise.Name).
		Set("muscle_group_id", exercise.MuscleGroupID).
		Set("description", exercise.Description).
		Set("exercise_type", exercise.Type).
		Where("id = ?", exercise.ID).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	return requireRow(res)
}

func (r *pgExerciseRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("exercises").Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgExerciseRepository) UpsertByName(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id,
		`INSERT INTO exercises (name, muscle_group_id, description, exercise_type)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (name) DO UPDATE
		 SET muscle_group_id = EXCLUDED.muscle_group_id,
		     description = EXCLUDED.description,
		     exercise_type = EXCLUDED.exercise_type
		 RETURNING id`,
		exercise.Name, exercise.MuscleGroupID, exercise.Description, exercise.Type)
	if err != nil {
		return 0, err
	}
	exercise.ID = id
	return id, nil
}

func (r *pgExerciseRepository) Random(ctx context.Context) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.db.GetContext(ctx, &exercise,
		`SELECT * FROM exercises ORDER BY random() LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// pgExerciseOfTheDayRepository implements the lazily assigned daily
// featured exercise on top of the unique date constraint.
type pgExerciseOfTheDayRepository struct {
	db *sqlx.DB
}

func NewExerciseOfTheDayRepository(db *sqlx.DB) repository.ExerciseOfTheDayRepository {
	return &pgExerciseOfTheDayRepository{db: db}
}

func (r *pgExerciseOfTheDayRepository) GetOrCreate(ctx context.Context, date time.Time, exerciseID int64) (*domain.ExerciseOfTheDay, error) {
	day := date.Format("2006-01-02")

	// Insert-if-absent first; a concurrent first read loses the insert
	// race and falls through to the select below.
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO exercise_of_the_day (date, exercise_id) VALUES ($1, $2)
		 ON CONFLICT (date) DO NOTHING`, day, exerciseID); err != nil {
		return nil, err
	}

	var eod domain.ExerciseOfTheDay
	if err := r.db.GetContext(ctx, &eod,
		`SELECT * FROM exercise_of_the_day WHERE date = $1`, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &eod, nil
}
