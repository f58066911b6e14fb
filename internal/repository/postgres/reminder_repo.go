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

// pgReminderRepository implements repository.ReminderRepository.
type pgReminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepository(db *sqlx.DB) repository.ReminderRepository {
	return &pgReminderRepository{db: db}
}

func (r *pgReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) (int64, error) {
	query, args, err := psql.Insert("reminders").
		Columns("user_id", "routine_id", "reminder_time", "message", "is_sent").
		Values(reminder.UserID, reminder.RoutineID, reminder.ReminderTime, reminder.Message, false).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, err
	}
	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return 0, err
	}
	reminder.ID = id
	return id, nil
}

func (r *pgReminderRepository) GetByID(ctx context.Context, id, userID int64) (*domain.Reminder, error) {
	var reminder domain.Reminder
	err := r.db.GetContext(ctx, &reminder,
		`SELECT * FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &reminder, nil
}

func (r *pgReminderRepository) ListUnsentByUser(ctx context.Context, userID int64) ([]domain.Reminder, error) {
	reminders := []domain.Reminder{}
	query, args, err := psql.Select("*").From("reminders").
		Where("user_id = ?", userID).
		Where("is_sent = FALSE").
		OrderBy("reminder_time").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &reminders, query, args...); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *pgReminderRepository) ListUnsentByUserOn(ctx context.Context, userID int64, date time.Time) ([]domain.Reminder, error) {
	reminders := []domain.Reminder{}
	err := r.db.SelectContext(ctx, &reminders,
		`SELECT * FROM reminders
		 WHERE user_id = $1 AND is_sent = FALSE AND reminder_time::date = $2
		 ORDER BY reminder_time`, userID, date.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *pgReminderRepository) Update(ctx context.Context, reminder *domain.Reminder, userID int64) error {
	query, args, err := psql.Update("reminders").
		Set("routine_id", reminder.RoutineID).
		Set("reminder_time", reminder.ReminderTime).
		Set("message", reminder.Message).
		Where("id = ?", reminder.ID).
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

func (r *pgReminderRepository) Delete(ctx context.Context, id, userID int64) error {
	query, args, err := psql.Delete("reminders").
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

func (r *pgReminderRepository) ListDue(ctx context.Context, now time.Time) ([]domain.Reminder, error) {
	reminders := []domain.Reminder{}
	query, args, err := psql.Select("*").From("reminders").
		Where("is_sent = FALSE").
		Where("reminder_time <= ?", now).
		OrderBy("reminder_time").
		ToSql()
	if err != nil {
		return nil, err
	}
	if err := r.db.SelectContext(ctx, &reminders, query, args...); err != nil {
		return nil, err
	}
	return reminders, nil
}

// MarkSent raises the sent flag. The flag is monotonic; there is no
// corresponding clear operation.
func (r *pgReminderRepository) MarkSent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders SET is_sent = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
