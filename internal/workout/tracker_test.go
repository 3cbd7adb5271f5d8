package workout

import (
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironiq/gymtap/internal/identity"
	"github.com/ironiq/gymtap/internal/models"
	"github.com/ironiq/gymtap/internal/repository"
	"github.com/ironiq/gymtap/internal/store"
)

// fakeRepo is an in-memory repository with injectable failures.
type fakeRepo struct {
	workouts  map[string]*models.Workout
	sessions  []*models.ExerciseSession
	createErr error
	saveErr   error
	deleteErr error

	deleteCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{workouts: make(map[string]*models.Workout)}
}

func (r *fakeRepo) CreateWorkout(userID string) (string, error) {
	if r.createErr != nil {
		return "", r.createErr
	}
	id := fmt.Sprintf("workout-%d", len(r.workouts)+1)
	r.workouts[id] = &models.Workout{
		WorkoutID: id,
		UserID:    userID,
		Status:    models.WorkoutInProgress,
		StartedAt: time.Now(),
	}
	return id, nil
}

func (r *fakeRepo) SaveExerciseSession(session *models.ExerciseSession) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.sessions = append(r.sessions, session)
	return nil
}

func (r *fakeRepo) CompleteWorkout(workoutID, name, notes string) error {
	w, ok := r.workouts[workoutID]
	if !ok {
		return repository.ErrWorkoutNotFound
	}
	if w.Status == models.WorkoutCompleted {
		return repository.ErrWorkoutCompleted
	}
	w.Status = models.WorkoutCompleted
	if name != "" {
		w.Name = name
	}
	if notes != "" {
		w.Notes = notes
	}
	return nil
}

func (r *fakeRepo) DeleteWorkout(workoutID string) error {
	r.deleteCalls++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.workouts[workoutID]; !ok {
		return repository.ErrWorkoutNotFound
	}
	delete(r.workouts, workoutID)
	return nil
}

func (r *fakeRepo) WorkoutByID(workoutID string) (*models.Workout, error) {
	w, ok := r.workouts[workoutID]
	if !ok {
		return nil, repository.ErrWorkoutNotFound
	}
	return w, nil
}

func (r *fakeRepo) ExercisesForWorkout(workoutID string) ([]models.ExerciseSession, error) {
	var out []models.ExerciseSession
	for _, s := range r.sessions {
		if s.WorkoutID == workoutID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out, nil
}

func (r *fakeRepo) MostRecentExerciseForMachine(userID, machineType string) (*models.ExerciseSession, error) {
	var latest *models.ExerciseSession
	for _, s := range r.sessions {
		if s.UserID != userID || s.MachineType != machineType {
			continue
		}
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	return latest, nil
}

func (r *fakeRepo) RecentWorkouts(userID string, limit int) ([]models.Workout, error) {
	var out []models.Workout
	for _, w := range r.workouts {
		if w.UserID == userID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// failingKV wraps MemoryKV and fails specific operations.
type failingKV struct {
	*store.MemoryKV
	putErr    error
	deleteErr error
}

func (f *failingKV) Put(key, value string) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.MemoryKV.Put(key, value)
}

func (f *failingKV) Delete(key string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.MemoryKV.Delete(key)
}

type trackerFixture struct {
	tracker *Tracker
	repo    *fakeRepo
	kv      *failingKV
	store   *store.SessionStore
	clock   *time.Time
}

func newTrackerFixture(t *testing.T) *trackerFixture {
	t.Helper()

	kv := &failingKV{MemoryKV: store.NewMemoryKV()}
	sessionStore := store.NewSessionStore(kv)
	repo := newFakeRepo()
	tracker := NewTracker(sessionStore, repo, identity.Static{UserID: "user-1"})

	now := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	tracker.SetNow(func() time.Time { return now })
	require.NoError(t, tracker.Init())

	return &trackerFixture{tracker: tracker, repo: repo, kv: kv, store: sessionStore, clock: &now}
}

func (f *trackerFixture) advance(d time.Duration) {
	*f.clock = f.clock.Add(d)
}

func tapInPayload() *models.CompactPayload {
	return &models.CompactPayload{
		MachineID:     "M1",
		MachineType:   "leg-press",
		NextSessionID: "AB12C3",
		Sessions: []models.SessionEntry{
			{Role: models.RoleActive, SessionID: "AB12C3", Sets: []models.Set{}},
		},
	}
}

func tapOutPayload(sets ...models.Set) *models.CompactPayload {
	return &models.CompactPayload{
		MachineID:     "M1",
		MachineType:   "leg-press",
		NextSessionID: "QQ77ZZ",
		Sessions: []models.SessionEntry{
			{Role: models.RoleLastCompleted, SessionID: "AB12C3", Sets: sets},
		},
	}
}

func TestTracker_RequiresInit(t *testing.T) {
	tracker := NewTracker(store.NewSessionStore(store.NewMemoryKV()), newFakeRepo(), identity.Static{UserID: "user-1"})

	_, err := tracker.Tap(tapInPayload())
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestTracker_TapInStartsExercise(t *testing.T) {
	f := newTrackerFixture(t)

	result, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)

	require.Equal(t, TapStarted, result.Action)
	assert.Equal(t, "AB12C3", result.Started.SessionID)
	assert.Equal(t, "M1", result.Started.MachineID)
	assert.Equal(t, "leg-press", result.Started.MachineType)
	assert.Equal(t, *f.clock, result.Started.StartedAt)
	assert.Equal(t, StateExerciseActive, f.tracker.State())

	// Durable: a fresh tracker over the same store sees the session.
	restarted := NewTracker(f.store, f.repo, identity.Static{UserID: "user-1"})
	require.NoError(t, restarted.Init())
	active := restarted.ActiveSession()
	require.NotNil(t, active)
	assert.Equal(t, "AB12C3", active.SessionID)
}

func TestTracker_TapInWhileActiveFails(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)

	_, err = f.tracker.TapIn(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	assert.ErrorIs(t, err, ErrAlreadyActive)

	// Durable state untouched
	active, loadErr := f.store.LoadActiveSession()
	require.NoError(t, loadErr)
	require.NotNil(t, active)
	assert.Equal(t, "AB12C3", active.SessionID)
}

func TestTracker_TapOutCompletesExercise(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	f.advance(95 * time.Second)

	result, err := f.tracker.Tap(tapOutPayload(
		models.Set{WeightLbs: 135, Reps: 10},
		models.Set{WeightLbs: 135, Reps: 8},
	))
	require.NoError(t, err)
	require.Equal(t, TapCompleted, result.Action)

	session := result.Completed
	assert.Equal(t, "AB12C3", session.SessionID)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, 95, session.DurationSeconds)
	assert.Equal(t, []models.Set{{WeightLbs: 135, Reps: 10}, {WeightLbs: 135, Reps: 8}}, session.Sets)

	// Active session cleared, workout opened and remembered
	assert.Nil(t, f.tracker.ActiveSession())
	assert.Equal(t, StateBetweenExercises, f.tracker.State())
	require.NotEmpty(t, f.tracker.ActiveWorkoutID())
	assert.Equal(t, f.tracker.ActiveWorkoutID(), session.WorkoutID)

	require.Len(t, f.repo.sessions, 1)
}

func TestTracker_TapOutReusesOpenWorkout(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)
	workoutID := f.tracker.ActiveWorkoutID()

	second := tapInPayload()
	second.MachineID = "M2"
	second.MachineType = "chest-press"
	second.NextSessionID = "DD44EE"
	_, err = f.tracker.Tap(second)
	require.NoError(t, err)

	out := &models.CompactPayload{
		MachineID:     "M2",
		MachineType:   "chest-press",
		NextSessionID: "FF55GG",
		Sessions: []models.SessionEntry{
			{Role: models.RoleLastCompleted, SessionID: "DD44EE", Sets: []models.Set{{WeightLbs: 90, Reps: 12}}},
		},
	}
	result, err := f.tracker.Tap(out)
	require.NoError(t, err)

	assert.Equal(t, workoutID, result.Completed.WorkoutID)
	assert.Len(t, f.repo.workouts, 1)
}

func TestTracker_TapOutSessionNotFound(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)

	stranger := &models.CompactPayload{
		MachineID:     "M1",
		MachineType:   "leg-press",
		NextSessionID: "QQ77ZZ",
		Sessions: []models.SessionEntry{
			{Role: models.RoleActive, SessionID: "XYZ999", Sets: []models.Set{{WeightLbs: 50, Reps: 12}}},
		},
	}
	_, err = f.tracker.Tap(stranger)

	var snf *SessionNotFoundError
	require.ErrorAs(t, err, &snf)
	assert.Equal(t, "AB12C3", snf.SessionID)
	require.Len(t, snf.Candidates, 1)
	assert.Equal(t, "XYZ999", snf.Candidates[0].SessionID)

	// The active session survives until a recovery clear.
	assert.Equal(t, StateExerciseActive, f.tracker.State())
	assert.Empty(t, f.repo.sessions)

	require.NoError(t, f.tracker.RecoveryClear())
	assert.Equal(t, StateIdle, f.tracker.State())
	assert.Empty(t, f.repo.sessions)

	stored, loadErr := f.store.LoadActiveSession()
	require.NoError(t, loadErr)
	assert.Nil(t, stored)
}

func TestTracker_WeightSentinelSurvivesToRepository(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)

	result, err := f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: models.WeightUnknown, Reps: 12}))
	require.NoError(t, err)

	assert.Equal(t, models.WeightUnknown, result.Completed.Sets[0].WeightLbs)
	assert.Equal(t, models.WeightUnknown, f.repo.sessions[0].Sets[0].WeightLbs)
}

func TestTracker_DuplicateTapRejected(t *testing.T) {
	f := newTrackerFixture(t)

	payload := tapInPayload()
	_, err := f.tracker.Tap(payload)
	require.NoError(t, err)

	_, err = f.tracker.Tap(tapInPayload())
	assert.ErrorIs(t, err, ErrDuplicateTap)
	assert.Equal(t, StateExerciseActive, f.tracker.State())
}

func TestTracker_TapOutPersistsBeforeClearing(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)

	f.repo.saveErr = errors.New("repository down")
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)

	// The exercise was not persisted, so the active session must remain.
	assert.Equal(t, StateExerciseActive, f.tracker.State())
	stored, loadErr := f.store.LoadActiveSession()
	require.NoError(t, loadErr)
	require.NotNil(t, stored)

	// Retry after the repository recovers.
	f.repo.saveErr = nil
	result, err := f.tracker.TapOut(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)
	assert.Equal(t, "AB12C3", result.SessionID)
	assert.Equal(t, StateBetweenExercises, f.tracker.State())
}

func TestTracker_TapInPersistFailureLeavesIdle(t *testing.T) {
	f := newTrackerFixture(t)

	f.kv.putErr = errors.New("disk full")
	_, err := f.tracker.Tap(tapInPayload())

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, StateIdle, f.tracker.State())
}

func TestTracker_TapOutUnauthenticated(t *testing.T) {
	kv := store.NewMemoryKV()
	sessionStore := store.NewSessionStore(kv)
	repo := newFakeRepo()
	tracker := NewTracker(sessionStore, repo, identity.Static{})
	require.NoError(t, tracker.Init())

	_, err := tracker.Tap(tapInPayload())
	require.NoError(t, err)

	_, err = tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	assert.ErrorIs(t, err, identity.ErrUnauthenticated)
	assert.Equal(t, StateExerciseActive, tracker.State())
	assert.Empty(t, repo.sessions)
}

func TestTracker_CompleteWorkout(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)
	workoutID := f.tracker.ActiveWorkoutID()

	require.NoError(t, f.tracker.CompleteWorkout("Leg day", "felt strong"))

	assert.Equal(t, StateIdle, f.tracker.State())
	assert.Empty(t, f.tracker.ActiveWorkoutID())

	w := f.repo.workouts[workoutID]
	require.NotNil(t, w)
	assert.Equal(t, models.WorkoutCompleted, w.Status)
	assert.Equal(t, "Leg day", w.Name)
	assert.Equal(t, "felt strong", w.Notes)
}

func TestTracker_CompleteWorkoutGuards(t *testing.T) {
	f := newTrackerFixture(t)

	assert.ErrorIs(t, f.tracker.CompleteWorkout("", ""), ErrNoActiveWorkout)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	assert.ErrorIs(t, f.tracker.CompleteWorkout("", ""), ErrExerciseActive)
}

func TestTracker_DiscardWorkout(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)

	require.NoError(t, f.tracker.DiscardWorkout())
	assert.Equal(t, StateIdle, f.tracker.State())
	assert.Empty(t, f.repo.workouts)
	assert.Equal(t, 1, f.repo.deleteCalls)
}

func TestTracker_DiscardClearsLocallyOnMissingWorkout(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)

	// Someone else already removed the workout; the local clear still wins.
	f.repo.deleteErr = repository.ErrWorkoutNotFound
	require.NoError(t, f.tracker.DiscardWorkout())
	assert.Equal(t, StateIdle, f.tracker.State())
}

func TestTracker_DiscardReportsRepositoryFailureAfterClearing(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)

	f.repo.deleteErr = errors.New("repository down")
	err = f.tracker.DiscardWorkout()
	assert.Error(t, err)

	// Forward progress: local state is already clear.
	assert.Equal(t, StateIdle, f.tracker.State())
	assert.Empty(t, f.tracker.ActiveWorkoutID())
}

func TestTracker_RecoveryClearIsNoOpWhenIdle(t *testing.T) {
	f := newTrackerFixture(t)
	assert.NoError(t, f.tracker.RecoveryClear())
}

func TestTracker_StateSurvivesRestartMidWorkout(t *testing.T) {
	f := newTrackerFixture(t)

	_, err := f.tracker.Tap(tapInPayload())
	require.NoError(t, err)
	_, err = f.tracker.Tap(tapOutPayload(models.Set{WeightLbs: 135, Reps: 10}))
	require.NoError(t, err)
	workoutID := f.tracker.ActiveWorkoutID()

	restarted := NewTracker(f.store, f.repo, identity.Static{UserID: "user-1"})
	require.NoError(t, restarted.Init())

	assert.Equal(t, StateBetweenExercises, restarted.State())
	assert.Equal(t, workoutID, restarted.ActiveWorkoutID())
}
