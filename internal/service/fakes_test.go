package service

import (
	"context"
	"sort"
	"time"

	"fittrack/internal/domain"
	"fittrack/internal/repository"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (int64, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, repository.ErrConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, u := range r.users {
		if u.ID != user.ID && (u.Username == user.Username || u.Email == user.Email) {
			return repository.ErrConflict
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) SetProfilePicture(_ context.Context, id int64, url string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.ProfilePictureURL = &url
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeStorage struct {
	uploads   map[string][]byte
	deleted   []string
	err       error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{uploads: map[string][]byte{}}
}

func (s *fakeStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.uploads[key] = data
	return "https://storage.test/fittrack/" + key, nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "https://storage.test/fittrack/" + key + "?signed=1", nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, key string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.uploads, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeChallengeRepo struct {
	nextID     int64
	challenges map[int64]*domain.WorkoutChallenge

	nextUCID       int64
	userChallenges map[int64]*domain.UserChallenge

	nextUCEID int64
	exercises map[int64]*domain.UserChallengeExercise
}

func newFakeChallengeRepo() *fakeChallengeRepo {
	return &fakeChallengeRepo{
		challenges:     map[int64]*domain.WorkoutChallenge{},
		userChallenges: map[int64]*domain.UserChallenge{},
		exercises:      map[int64]*domain.UserChallengeExercise{},
	}
}

func (r *fakeChallengeRepo) Create(_ context.Context, challenge *domain.WorkoutChallenge, exerciseIDs []int64) (int64, error) {
	r.nextID++
	challenge.ID = r.nextID
	challenge.Exercises = make([]domain.Exercise, 0, len(exerciseIDs))
	for _, id := range exerciseIDs {
		challenge.Exercises = append(challenge.Exercises, domain.Exercise{ID: id})
	}
	copied := *challenge
	r.challenges[challenge.ID] = &copied
	return challenge.ID, nil
}

func (r *fakeChallengeRepo) GetByID(_ context.Context, id int64) (*domain.WorkoutChallenge, error) {
	c, ok := r.challenges[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeChallengeRepo) List(_ context.Context) ([]domain.WorkoutChallenge, error) {
	out := make([]domain.WorkoutChallenge, 0, len(r.challenges))
	for _, c := range r.challenges {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChallengeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.challenges[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.challenges, id)
	return nil
}

func (r *fakeChallengeRepo) Join(_ context.Context, userID, challengeID int64) (*domain.UserChallenge, bool, error) {
	for _, uc := range r.userChallenges {
		if uc.UserID == userID && uc.ChallengeID == challengeID {
			copied := *uc
			return &copied, false, nil
		}
	}

	challenge, ok := r.challenges[challengeID]
	if !ok {
		return nil, false, repository.ErrNotFound
	}

	r.nextUCID++
	uc := &domain.UserChallenge{
		ID:          r.nextUCID,
		UserID:      userID,
		ChallengeID: challengeID,
		JoinedAt:    time.Now(),
	}
	r.userChallenges[uc.ID] = uc

	for _, ex := range challenge.Exercises {
		r.nextUCEID++
		r.exercises[r.nextUCEID] = &domain.UserChallengeExercise{
			ID:              r.nextUCEID,
			UserChallengeID: uc.ID,
			ExerciseID:      ex.ID,
		}
	}

	copied := *uc
	return &copied, true, nil
}

func (r *fakeChallengeRepo) GetUserChallenge(_ context.Context, id, userID int64) (*domain.UserChallenge, error) {
	uc, ok := r.userChallenges[id]
	if !ok || uc.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *uc
	return &copied, nil
}

func (r *fakeChallengeRepo) ListUserChallenges(_ context.Context, userID int64) ([]domain.UserChallenge, error) {
	out := []domain.UserChallenge{}
	for _, uc := range r.userChallenges {
		if uc.UserID == userID {
			out = append(out, *uc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChallengeRepo) ListUserChallengeExercises(_ context.Context, userChallengeID int64) ([]domain.UserChallengeExercise, error) {
	out := []domain.UserChallengeExercise{}
	for _, uce := range r.exercises {
		if uce.UserChallengeID == userChallengeID {
			out = append(out, *uce)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeChallengeRepo) CompleteExercise(_ context.Context, userChallengeID, exerciseID int64, at time.Time) (bool, error) {
	for _, uce := range r.exercises {
		if uce.UserChallengeID == userChallengeID && uce.ExerciseID == exerciseID {
			if uce.Completed {
				return false, nil
			}
			uce.Completed = true
			uce.CompletedAt = &at
			return true, nil
		}
	}
	return false, repository.ErrNotFound
}

func (r *fakeChallengeRepo) CountCompletedExercises(_ context.Context, userChallengeID int64) (int, error) {
	count := 0
	for _, uce := range r.exercises {
		if uce.UserChallengeID == userChallengeID && uce.Completed {
			count++
		}
	}
	return count, nil
}

func (r *fakeChallengeRepo) UpdateProgress(_ context.Context, userChallengeID int64, progress int, completed bool) error {
	uc, ok := r.userChallenges[userChallengeID]
	if !ok {
		return repository.ErrNotFound
	}
	uc.Progress = progress
	uc.Completed = uc.Completed || completed
	uc.UpdatedAt = time.Now()
	return nil
}

type fakeReminderRepo struct {
	nextID    int64
	reminders map[int64]*domain.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: map[int64]*domain.Reminder{}}
}

func (r *fakeReminderRepo) Create(_ context.Context, reminder *domain.Reminder) (int64, error) {
	r.nextID++
	reminder.ID = r.nextID
	copied := *reminder
	r.reminders[reminder.ID] = &copied
	return reminder.ID, nil
}

func (r *fakeReminderRepo) GetByID(_ context.Context, id, userID int64) (*domain.Reminder, error) {
	rem, ok := r.reminders[id]
	if !ok || rem.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *rem
	return &copied, nil
}

func (r *fakeReminderRepo) ListUnsentByUser(_ context.Context, userID int64) ([]domain.Reminder, error) {
	out := []domain.Reminder{}
	for _, rem := range r.reminders {
		if rem.UserID == userID && !rem.IsSent {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReminderRepo) ListUnsentByUserOn(_ context.Context, userID int64, date time.Time) ([]domain.Reminder, error) {
	out := []domain.Reminder{}
	y, m, d := date.UTC().Date()
	for _, rem := range r.reminders {
		ry, rm, rd := rem.ReminderTime.UTC().Date()
		if rem.UserID == userID && !rem.IsSent && y == ry && m == rm && d == rd {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReminderRepo) Update(_ context.Context, reminder *domain.Reminder, userID int64) error {
	existing, ok := r.reminders[reminder.ID]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	copied := *reminder
	copied.IsSent = existing.IsSent
	r.reminders[reminder.ID] = &copied
	return nil
}

func (r *fakeReminderRepo) Delete(_ context.Context, id, userID int64) error {
	existing, ok := r.reminders[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.reminders, id)
	return nil
}

func (r *fakeReminderRepo) ListDue(_ context.Context, now time.Time) ([]domain.Reminder, error) {
	out := []domain.Reminder{}
	for _, rem := range r.reminders {
		if !rem.IsSent && !rem.ReminderTime.After(now) {
			out = append(out, *rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeReminderRepo) MarkSent(_ context.Context, id int64) error {
	rem, ok := r.reminders[id]
	if !ok {
		return repository.ErrNotFound
	}
	rem.IsSent = true
	return nil
}

type fakeRoutineRepo struct {
	nextID   int64
	routines map[int64]*domain.Routine

	nextREID int64
	entries  map[int64]*domain.RoutineExercise
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{
		routines: map[int64]*domain.Routine{},
		entries:  map[int64]*domain.RoutineExercise{},
	}
}

func (r *fakeRoutineRepo) Create(_ context.Context, routine *domain.Routine) (int64, error) {
	r.nextID++
	routine.ID = r.nextID
	for i := range routine.Exercises {
		r.nextREID++
		routine.Exercises[i].ID = r.nextREID
		routine.Exercises[i].RoutineID = routine.ID
		copied := routine.Exercises[i]
		r.entries[copied.ID] = &copied
	}
	copied := *routine
	r.routines[routine.ID] = &copied
	return routine.ID, nil
}

func (r *fakeRoutineRepo) GetByID(_ context.Context, id, userID int64) (*domain.Routine, error) {
	routine, ok := r.routines[id]
	if !ok || routine.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *routine
	return &copied, nil
}

func (r *fakeRoutineRepo) ListByUser(_ context.Context, userID int64) ([]domain.Routine, error) {
	out := []domain.Routine{}
	for _, routine := range r.routines {
		if routine.UserID == userID {
			out = append(out, *routine)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRoutineRepo) FirstByUser(ctx context.Context, userID int64) (*domain.Routine, error) {
	routines, _ := r.ListByUser(ctx, userID)
	if len(routines) == 0 {
		return nil, repository.ErrNotFound
	}
	return &routines[0], nil
}

func (r *fakeRoutineRepo) Update(_ context.Context, routine *domain.Routine, userID int64) error {
	existing, ok := r.routines[routine.ID]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	existing.Name = routine.Name
	return nil
}

func (r *fakeRoutineRepo) Delete(_ context.Context, id, userID int64) error {
	existing, ok := r.routines[id]
	if !ok || existing.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.routines, id)
	for entryID, entry := range r.entries {
		if entry.RoutineID == id {
			delete(r.entries, entryID)
		}
	}
	return nil
}

func (r *fakeRoutineRepo) CreateExercise(_ context.Context, re *domain.RoutineExercise, userID int64) (int64, error) {
	routine, ok := r.routines[re.RoutineID]
	if !ok || routine.UserID != userID {
		return 0, repository.ErrNotFound
	}
	r.nextREID++
	re.ID = r.nextREID
	copied := *re
	r.entries[re.ID] = &copied
	return re.ID, nil
}

func (r *fakeRoutineRepo) GetExerciseByID(_ context.Context, id, userID int64) (*domain.RoutineExercise, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	routine, ok := r.routines[entry.RoutineID]
	if !ok || routine.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *entry
	return &copied, nil
}

func (r *fakeRoutineRepo) ListExercisesByUser(_ context.Context, userID int64) ([]domain.RoutineExercise, error) {
	out := []domain.RoutineExercise{}
	for _, entry := range r.entries {
		routine, ok := r.routines[entry.RoutineID]
		if ok && routine.UserID == userID {
			out = append(out, *entry)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRoutineRepo) UpdateExercise(ctx context.Context, re *domain.RoutineExercise, userID int64) error {
	if _, err := r.GetExerciseByID(ctx, re.ID, userID); err != nil {
		return err
	}
	existing := r.entries[re.ID]
	re.RoutineID = existing.RoutineID
	copied := *re
	r.entries[re.ID] = &copied
	return nil
}

func (r *fakeRoutineRepo) DeleteExercise(ctx context.Context, id, userID int64) error {
	if _, err := r.GetExerciseByID(ctx, id, userID); err != nil {
		return err
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeRoutineRepo) CountExercisesByUser(ctx context.Context, userID int64) (int, error) {
	entries, _ := r.ListExercisesByUser(ctx, userID)
	return len(entries), nil
}

type fakeWorkoutRepo struct {
	nextID   int64
	workouts map[int64]*domain.CompletedWorkout

	nextCEID int64
	entries  map[int64]*domain.CompletedExercise

	summaries []domain.WorkoutSummary
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{
		workouts: map[int64]*domain.CompletedWorkout{},
		entries:  map[int64]*domain.CompletedExercise{},
	}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.CompletedWorkout) (int64, error) {
	r.nextID++
	workout.ID = r.nextID
	for i := range workout.Exercises {
		r.nextCEID++
		workout.Exercises[i].ID = r.nextCEID
		workout.Exercises[i].CompletedWorkoutID = workout.ID
		copied := workout.Exercises[i]
		r.entries[copied.ID] = &copied
	}
	copied := *workout
	r.workouts[workout.ID] = &copied
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id, userID int64) (*domain.CompletedWorkout, error) {
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copied := *w
	return &copied, nil
}

func (r *fakeWorkoutRepo) ListByUser(_ context.Context, userID int64) ([]domain.CompletedWorkout, error) {
	out := []domain.CompletedWorkout{}
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id, userID int64) error {
	w, ok := r.workouts[id]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func (r *fakeWorkoutRepo) CreateExercise(_ context.Context, ce *domain.CompletedExercise, userID int64) (int64, error) {
	w, ok := r.workouts[ce.CompletedWorkoutID]
	if !ok || w.UserID != userID {
		return 0, repository.ErrNotFound
	}
	r.nextCEID++
	ce.ID = r.nextCEID
	copied := *ce
	r.entries[ce.ID] = &copied
	return ce.ID, nil
}

func (r *fakeWorkoutRepo) ListExercisesByUser(_ context.Context, userID int64) ([]domain.CompletedExercise, error) {
	out := []domain.CompletedExercise{}
	for _, ce := range r.entries {
		w, ok := r.workouts[ce.CompletedWorkoutID]
		if ok && w.UserID == userID {
			out = append(out, *ce)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeWorkoutRepo) UpdateExercise(_ context.Context, ce *domain.CompletedExercise, userID int64) error {
	existing, ok := r.entries[ce.ID]
	if !ok {
		return repository.ErrNotFound
	}
	w, ok := r.workouts[existing.CompletedWorkoutID]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	ce.CompletedWorkoutID = existing.CompletedWorkoutID
	copied := *ce
	r.entries[ce.ID] = &copied
	return nil
}

func (r *fakeWorkoutRepo) DeleteExercise(_ context.Context, id, userID int64) error {
	existing, ok := r.entries[id]
	if !ok {
		return repository.ErrNotFound
	}
	w, ok := r.workouts[existing.CompletedWorkoutID]
	if !ok || w.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeWorkoutRepo) CountExercisesCompletedOn(_ context.Context, userID int64, date time.Time) (int, error) {
	y, m, d := date.UTC().Date()
	count := 0
	for _, ce := range r.entries {
		w, ok := r.workouts[ce.CompletedWorkoutID]
		if !ok || w.UserID != userID {
			continue
		}
		wy, wm, wd := w.CompletedAt.UTC().Date()
		if y == wy && m == wm && d == wd {
			count++
		}
	}
	return count, nil
}

func (r *fakeWorkoutRepo) ListSummariesBetween(_ context.Context, _ int64, from, to time.Time) ([]domain.WorkoutSummary, error) {
	out := []domain.WorkoutSummary{}
	for _, s := range r.summaries {
		if !s.StartedAt.Before(from) && !s.StartedAt.After(to) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeExerciseRepo struct {
	nextID    int64
	exercises map[int64]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: map[int64]*domain.Exercise{}}
}

func (r *fakeExerciseRepo) Create(_ context.Context, exercise *domain.Exercise) (int64, error) {
	r.nextID++
	exercise.ID = r.nextID
	copied := *exercise
	r.exercises[exercise.ID] = &copied
	return exercise.ID, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id int64) (*domain.Exercise, error) {
	e, ok := r.exercises[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeExerciseRepo) List(_ context.Context) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0, len(r.exercises))
	for _, e := range r.exercises {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeExerciseRepo) ListByType(_ context.Context, t domain.ExerciseType) ([]domain.Exercise, error) {
	out := []domain.Exercise{}
	for _, e := range r.exercises {
		if e.Type == t {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeExerciseRepo) Update(_ context.Context, exercise *domain.Exercise) error {
	if _, ok := r.exercises[exercise.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *exercise
	r.exercises[exercise.ID] = &copied
	return nil
}

func (r *fakeExerciseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.exercises[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.exercises, id)
	return nil
}

func (r *fakeExerciseRepo) UpsertByName(ctx context.Context, exercise *domain.Exercise) (int64, error) {
	for _, e := range r.exercises {
		if e.Name == exercise.Name {
			exercise.ID = e.ID
			return e.ID, nil
		}
	}
	return r.Create(ctx, exercise)
}

func (r *fakeExerciseRepo) Random(_ context.Context) (*domain.Exercise, error) {
	for _, e := range r.exercises {
		copied := *e
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

type fakeMuscleGroupRepo struct {
	nextID int64
	groups map[int64]*domain.MuscleGroup
}

func newFakeMuscleGroupRepo() *fakeMuscleGroupRepo {
	return &fakeMuscleGroupRepo{groups: map[int64]*domain.MuscleGroup{}}
}

func (r *fakeMuscleGroupRepo) Create(_ context.Context, mg *domain.MuscleGroup) (int64, error) {
	r.nextID++
	mg.ID = r.nextID
	copied := *mg
	r.groups[mg.ID] = &copied
	return mg.ID, nil
}

func (r *fakeMuscleGroupRepo) GetByID(_ context.Context, id int64) (*domain.MuscleGroup, error) {
	mg, ok := r.groups[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *mg
	return &copied, nil
}

func (r *fakeMuscleGroupRepo) List(_ context.Context) ([]domain.MuscleGroup, error) {
	out := make([]domain.MuscleGroup, 0, len(r.groups))
	for _, mg := range r.groups {
		out = append(out, *mg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMuscleGroupRepo) Update(_ context.Context, mg *domain.MuscleGroup) error {
	if _, ok := r.groups[mg.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *mg
	r.groups[mg.ID] = &copied
	return nil
}

func (r *fakeMuscleGroupRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.groups[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.groups, id)
	return nil
}

func (r *fakeMuscleGroupRepo) UpsertByName(ctx context.Context, name string) (int64, error) {
	for _, mg := range r.groups {
		if mg.Name == name {
			return mg.ID, nil
		}
	}
	return r.Create(ctx, &domain.MuscleGroup{Name: name})
}

type fakeFavoriteRepo struct {
	nextID    int64
	favorites map[int64]*domain.FavoriteExercise
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: map[int64]*domain.FavoriteExercise{}}
}

func (r *fakeFavoriteRepo) ListByUser(_ context.Context, userID int64) ([]domain.FavoriteExercise, error) {
	out := []domain.FavoriteExercise{}
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFavoriteRepo) Toggle(_ context.Context, userID, exerciseID int64) (bool, error) {
	for id, f := range r.favorites {
		if f.UserID == userID && f.ExerciseID == exerciseID {
			delete(r.favorites, id)
			return false, nil
		}
	}
	r.nextID++
	r.favorites[r.nextID] = &domain.FavoriteExercise{ID: r.nextID, UserID: userID, ExerciseID: exerciseID}
	return true, nil
}

type fakeEodRepo struct {
	nextID int64
	byDate map[string]*domain.ExerciseOfTheDay
}

func newFakeEodRepo() *fakeEodRepo {
	return &fakeEodRepo{byDate: map[string]*domain.ExerciseOfTheDay{}}
}

func (r *fakeEodRepo) GetOrCreate(_ context.Context, date time.Time, exerciseID int64) (*domain.ExerciseOfTheDay, error) {
	key := date.UTC().Format("2006-01-02")
	if eod, ok := r.byDate[key]; ok {
		copied := *eod
		return &copied, nil
	}
	r.nextID++
	eod := &domain.ExerciseOfTheDay{ID: r.nextID, Date: date, ExerciseID: exerciseID}
	r.byDate[key] = eod
	copied := *eod
	return &copied, nil
}
