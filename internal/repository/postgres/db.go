package postgres

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Default connection timeout.
const defaultTimeout = 10 * time.Second

// psql is the shared statement builder; Postgres wants $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Connect opens a connection pool to Postgres and verifies it with a
// ping before returning.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// schema is applied by the migrate command. Statements are idempotent;
// uniqueness constraints carry the invariants the services rely on
// (natural catalog keys, one favorite per pair, one challenge
// membership per pair, one featured exercise per date).
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		gender TEXT NOT NULL DEFAULT '',
		profile_picture_url TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS muscle_groups (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS exercises (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		muscle_group_id BIGINT NOT NULL REFERENCES muscle_groups(id) ON DELETE CASCADE,
		description TEXT NOT NULL DEFAULT '',
		exercise_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS routines (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS routine_exercises (
		id BIGSERIAL PRIMARY KEY,
		routine_id BIGINT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
		exercise_id BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		sets INT,
		reps INT,
		duration INT,
		distance DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS completed_workouts (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		routine_id BIGINT NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
		started_at TIMESTAMPTZ NOT NULL,
		completed_at TIMESTAMPTZ NOT NULL,
		duration_seconds BIGINT NOT NULL DEFAULT 0,
		calories_burned INT NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS completed_exercises (
		id BIGSERIAL PRIMARY KEY,
		completed_workout_id BIGINT NOT NULL REFERENCES completed_workouts(id) ON DELETE CASCADE,
		routine_exercise_id BIGINT NOT NULL REFERENCES routine_exercises(id) ON DELETE CASCADE,
		sets_completed INT,
		reps_completed INT,
		duration_completed INT,
		distance_completed DOUBLE PRECISION,
		notes TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		routine_id BIGINT REFERENCES routines(id) ON DELETE CASCADE,
		reminder_time TIMESTAMPTZ NOT NULL,
		message TEXT NOT NULL,
		is_sent BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders (is_sent, reminder_time)`,
	`CREATE TABLE IF NOT EXISTS favorite_exercises (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		exercise_id BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		UNIQUE (user_id, exercise_id)
	)`,
	`CREATE TABLE IF NOT EXISTS exercise_of_the_day (
		id BIGSERIAL PRIMARY KEY,
		date DATE NOT NULL UNIQUE,
		exercise_id BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS workout_challenges (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		start_date DATE NOT NULL,
		end_date DATE NOT NULL,
		goal INT NOT NULL,
		difficulty TEXT NOT NULL,
		exercise_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workout_challenge_exercises (
		id BIGSERIAL PRIMARY KEY,
		challenge_id BIGINT NOT NULL REFERENCES workout_challenges(id) ON DELETE CASCADE,
		exercise_id BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		UNIQUE (challenge_id, exercise_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_challenges (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		challenge_id BIGINT NOT NULL REFERENCES workout_challenges(id) ON DELETE CASCADE,
		progress INT NOT NULL DEFAULT 0,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (user_id, challenge_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_challenge_exercises (
		id BIGSERIAL PRIMARY KEY,
		user_challenge_id BIGINT NOT NULL REFERENCES user_challenges(id) ON DELETE CASCADE,
		exercise_id BIGINT NOT NULL REFERENCES exercises(id) ON DELETE CASCADE,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		UNIQUE (user_challenge_id, exercise_id)
	)`,
}

// Migrate applies the schema. Safe to run on every start.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
