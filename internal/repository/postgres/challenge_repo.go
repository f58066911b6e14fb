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

// pgChallengeRepository implements repository.ChallengeRepository.
type pgChallengeRepository struct {
	db *sqlx.DB
}

func NewChallengeRepository(db *sqlx.DB) repository.ChallengeRepository {
	return &pgChallengeRepository{db: db}
}

func (r *pgChallengeRepository) Create(ctx context.Context, challenge *domain.WorkoutChallenge, exerciseIDs []int64) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	if err := tx.GetContext(ctx, &id,
		`INSERT INTO workout_challenges
		 (name, description, start_date, end_date, goal, difficulty, exercise_type)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		challenge.Name, challenge.Description, challenge.StartDate, challenge.EndDate,
		challenge.Goal, challenge.Difficulty, challenge.ExerciseType); err != nil {
		return 0, err
	}

	for _, exerciseID := range exerciseIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO workout_challenge_exercises (challenge_id, exercise_id) VALUES ($1, $2)
			 ON CONFLICT (challenge_id, exercise_id) DO NOTHING`, id, exerciseID); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	challenge.ID = id
	return id, nil
}

func (r *pgChallengeRepository) GetByID(ctx context.Context, id int64) (*domain.WorkoutChallenge, error) {
	var challenge domain.WorkoutChallenge
	query, args, err := psql.Select("*").From("workout_challenges").Where("id = ?", id).ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.GetContext(ctx, &challenge, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if err := r.loadExercises(ctx, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *pgChallengeRepository) List(ctx context.Context) ([]domain.WorkoutChallenge, error) {
	challenges := []domain.WorkoutChallenge{}
	query, args, err := psql.Select("*").From("workout_challenges").OrderBy("start_date DESC", "id").ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &challenges, query, args...); err != nil {
		return nil, err
	}
	for i := range challenges {
		if err := r.loadExercises(ctx, &challenges[i]); err != nil {
			return nil, err
		}
	}
	return challenges, nil
}

func (r *pgChallengeRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("workout_challenges").Where("id = ?", id).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *pgChallengeRepository) loadExercises(ctx context.Context, challenge *domain.WorkoutChallenge) error {
	exercises := []domain.Exercise{}
	err := r.db.SelectContext(ctx, &exercises,
		`SELECT e.* FROM exercises e
		 JOIN workout_challenge_exercises wce ON wce.exercise_id = e.id
		 WHERE wce.challenge_id = $1
		 ORDER BY e.name`, challenge.ID)
	if err != nil {
		return err
	}
	challenge.Exercises = exercises
	return nil
}

// Join creates the membership row and one incomplete per-exercise row
// for every exercise of the challenge, in a single transaction. A
// rejoin hits the (user_id, challenge_id) unique constraint and returns
// the existing membership untouched.
func (r *pgChallengeRepository) Join(ctx context.Context, userID, challengeID int64) (*domain.UserChallenge, bool, error) {
	existing, err := r.getUserChallengeByPair(ctx, userID, challengeID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	var uc domain.UserChallenge
	err = tx.GetContext(ctx, &uc,
		`INSERT INTO user_challenges (user_id, challenge_id, progress, completed, joined_at, updated_at)
		 VALUES ($1, $2, 0, FALSE, $3, $3)
		 RETURNING *`, userID, challengeID, now)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a concurrent join race; surface the winner's row.
			existing, gerr := r.getUserChallengeByPair(ctx, userID, challengeID)
			if gerr != nil {
				return nil, false, gerr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO user_challenge_exercises (user_challenge_id, exercise_id, completed)
		 SELECT $1, exercise_id, FALSE
		 FROM workout_challenge_exercises
		 WHERE challenge_id = $2`, uc.ID, challengeID); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &uc, true, nil
}

func (r *pgChallengeRepository) getUserChallengeByPair(ctx context.Context, userID, challengeID int64) (*domain.UserChallenge, error) {
	var uc domain.UserChallenge
	err := r.db.GetContext(ctx, &uc,
		`SELECT * FROM user_challenges WHERE user_id = $1 AND challenge_id = $2`, userID, challengeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &uc, nil
}

func (r *pgChallengeRepository) GetUserChallenge(ctx context.Context, id, userID int64) (*domain.UserChallenge, error) {
	var uc domain.UserChallenge
	err := r.db.GetContext(ctx, &uc,
		`SELECT * FROM user_challenges WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &uc, nil
}

func (r *pgChallengeRepository) ListUserChallenges(ctx context.Context, userID int64) ([]domain.UserChallenge, error) {
	challenges := []domain.UserChallenge{}
	query, args, err := psql.Select("*").From("user_challenges").
		Where("user_id = ?", userID).
		OrderBy("joined_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &challenges, query, args...); err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *pgChallengeRepository) ListUserChallengeExercises(ctx context.Context, userChallengeID int64) ([]domain.UserChallengeExercise, error) {
	exercises := []domain.UserChallengeExercise{}
	query, args, err := psql.Select("*").From("user_challenge_exercises").
		Where("user_challenge_id = ?", userChallengeID).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, err
	}
	return exercises, nil
}

// CompleteExercise raises the completed flag on the per-exercise row.
// The WHERE completed = FALSE clause makes a repeat call a no-op so
// progress is never double-counted.
func (r *pgChallengeRepository) CompleteExercise(ctx context.Context, userChallengeID, exerciseID int64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_challenge_exercises
		 SET completed = TRUE, completed_at = $1
		 WHERE user_challenge_id = $2 AND exercise_id = $3 AND completed = FALSE`,
		at, userChallengeID, exerciseID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return true, nil
	}

	// Nothing changed: either the row is already complete or the
	// exercise is not part of the challenge.
	var exists bool
	if err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM user_challenge_exercises
		 WHERE user_challenge_id = $1 AND exercise_id = $2)`, userChallengeID, exerciseID); err != nil {
		return false, err
	}
	if !exists {
		return false, repository.ErrNotFound
	}
	return false, nil
}

func (r *pgChallengeRepository) CountCompletedExercises(ctx context.Context, userChallengeID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT count(*) FROM user_challenge_exercises
		 WHERE user_challenge_id = $1 AND completed = TRUE`, userChallengeID)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateProgress persists the counter. completed = completed OR $n
// keeps the flag monotonic even if a caller passes false after it was
// raised.
func (r *pgChallengeRepository) UpdateProgress(ctx context.Context, userChallengeID int64, progress int, completed bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE user_challenges
		 SET progress = $1, completed = completed OR $2, updated_at = $3
		 WHERE id = $4`, progress, completed, time.Now().UTC(), userChallengeID)
	if err != nil {
		return err
	}
	return requireRow(res)
}
