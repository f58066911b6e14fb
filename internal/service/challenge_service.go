package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// --- Error Definitions ---
var (
	ErrChallengeNotFound         = errors.New("challenge not found")
	ErrUserChallengeNotFound     = errors.New("user challenge not found")
	ErrChallengeExerciseNotFound = errors.New("exercise is not part of this challenge")
)

// UserChallengeState is a membership row together with its
// per-exercise completion flags.
type UserChallengeState struct {
	domain.UserChallenge
	Exercises []domain.UserChallengeExercise `json:"exercises"`
}

// JoinResult reports the outcome of a join request.
type JoinResult struct {
	UserChallenge *domain.UserChallenge `json:"userChallenge"`
	AlreadyJoined bool                  `json:"alreadyJoined"`
	Message       string                `json:"message"`
}

// ChallengeService manages workout challenges and the per-user
// participation state machine: not joined, joined in progress, joined
// completed.
type ChallengeService interface {
	ListChallenges(ctx context.Context) ([]domain.WorkoutChallenge, error)
	GetChallenge(ctx context.Context, id int64) (*domain.WorkoutChallenge, error)

	Join(ctx context.Context, userID, challengeID int64) (*JoinResult, error)
	// UpdateProgress marks one challenge exercise complete for the
	// user. Repeats are no-ops; progress never double-counts.
	UpdateProgress(ctx context.Context, userID, userChallengeID, exerciseID int64) (*UserChallengeState, error)
	ListUserChallenges(ctx context.Context, userID int64) ([]UserChallengeState, error)
	GetUserChallenge(ctx context.Context, userID, userChallengeID int64) (*UserChallengeState, error)
}

type challengeService struct {
	challengeRepo repository.ChallengeRepository
	now           func() time.Time
}

func NewChallengeService(challengeRepo repository.ChallengeRepository) ChallengeService {
	return &challengeService{
		challengeRepo: challengeRepo,
		now:           time.Now,
	}
}

func (s *challengeService) ListChallenges(ctx context.Context) ([]domain.WorkoutChallenge, error) {
	return s.challengeRepo.List(ctx)
}

func (s *challengeService) GetChallenge(ctx context.Context, id int64) (*domain.WorkoutChallenge, error) {
	challenge, err := s.challengeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return challenge, nil
}

// Join moves the (user, challenge) pair from not-joined to joined. One
// per-exercise progress row is created for every exercise of the
// challenge, atomically. Rejoining reports already-joined and leaves
// existing progress untouched.
func (s *challengeService) Join(ctx context.Context, userID, challengeID int64) (*JoinResult, error) {
	if _, err := s.challengeRepo.GetByID(ctx, challengeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	uc, created, err := s.challengeRepo.Join(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}

	if !created {
		return &JoinResult{
			UserChallenge: uc,
			AlreadyJoined: true,
			Message:       "You have already joined this challenge",
		}, nil
	}

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"challenge_id": challengeID,
	}).Info("user joined challenge")

	return &JoinResult{
		UserChallenge: uc,
		Message:       "Successfully joined the challenge",
	}, nil
}

// UpdateProgress marks the exercise complete, recounts completed rows
// and raises the completed flag when the count reaches the challenge
// goal. The flag is never lowered again, even as progress keeps
// growing past the goal.
func (s *challengeService) UpdateProgress(ctx context.Context, userID, userChallengeID, exerciseID int64) (*UserChallengeState, error) {
	uc, err := s.challengeRepo.GetUserChallenge(ctx, userChallengeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserChallengeNotFound
		}
		return nil, err
	}

	changed, err := s.challengeRepo.CompleteExercise(ctx, userChallengeID, exerciseID, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChallengeExerciseNotFound
		}
		return nil, err
	}

	if changed {
		challenge, err := s.challengeRepo.GetByID(ctx, uc.ChallengeID)
		if err != nil {
			return nil, err
		}

		progress, err := s.challengeRepo.CountCompletedExercises(ctx, userChallengeID)
		if err != nil {
			return nil, err
		}

		completed := progress >= challenge.Goal
		if err := s.challengeRepo.UpdateProgress(ctx, userChallengeID, progress, completed); err != nil {
			return nil, err
		}

		if completed && !uc.Completed {
			logrus.WithFields(logrus.Fields{
				"user_id":      userID,
				"challenge_id": uc.ChallengeID,
				"progress":     progress,
			}).Info("challenge completed")
		}
	}

	return s.GetUserChallenge(ctx, userID, userChallengeID)
}

func (s *challengeService) ListUserChallenges(ctx context.Context, userID int64) ([]UserChallengeState, error) {
	memberships, err := s.challengeRepo.ListUserChallenges(ctx, userID)
	if err != nil {
		return nil, err
	}

	states := make([]UserChallengeState, 0, len(memberships))
	for _, uc := range memberships {
		exercises, err := s.challengeRepo.ListUserChallengeExercises(ctx, uc.ID)
		if err != nil {
			return nil, err
		}
		states = append(states, UserChallengeState{UserChallenge: uc, Exercises: exercises})
	}
	return states, nil
}

func (s *challengeService) GetUserChallenge(ctx context.Context, userID, userChallengeID int64) (*UserChallengeState, error) {
	uc, err := s.challengeRepo.GetUserChallenge(ctx, userChallengeID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserChallengeNotFound
		}
		return nil, err
	}

	exercises, err := s.challengeRepo.ListUserChallengeExercises(ctx, userChallengeID)
	if err != nil {
		return nil, err
	}
	return &UserChallengeState{UserChallenge: *uc, Exercises: exercises}, nil
}
