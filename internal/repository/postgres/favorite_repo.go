package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// pgFavoriteRepository implements repository.FavoriteRepository.
type pgFavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) repository.FavoriteRepository {
	return &pgFavoriteRepository{db: db}
}

func (r *pgFavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.FavoriteExercise, error) {
	favorites := []domain.FavoriteExercise{}
	query, args, err := psql.Select("*").From("favorite_exercises").
		Where("user_id = ?", userID).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &favorites, query, args...); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Toggle deletes the favorite row if present, otherwise inserts it.
// The (user_id, exercise_id) unique constraint resolves concurrent
// toggles for the same pair; a racing insert collapses into a no-op.
func (r *pgFavoriteRepository) Toggle(ctx context.Context, userID, exerciseID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorite_exercises WHERE user_id = $1 AND exercise_id = $2`,
		userID, exerciseID)
	if err != nil {
		return false, err
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if deleted > 0 {
		return false, nil
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO favorite_exercises (user_id, exercise_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, exercise_id) DO NOTHING`, userID, exerciseID)
	if err != nil {
		return false, err
	}
	return true, nil
}
