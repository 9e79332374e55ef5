package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitai/internal/models/db_models"
	"fitai/internal/models/request_models"
	"fitai/pkg/utils"
)

type fakeExerciseRepo struct {
	rows []db_models.Exercise
}

func (f *fakeExerciseRepo) Search(_ context.Context, query, bodyPart, equipment string, limit int) ([]db_models.Exercise, error) {
	var out []db_models.Exercise
	for _, row := range f.rows {
		if query != "" && !strings.Contains(strings.ToLower(row.Name), strings.ToLower(query)) {
			continue
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeExerciseRepo) FindByID(_ context.Context, id uuid.UUID) (*db_models.Exercise, error) {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i], nil
		}
	}
	return nil, nil
}

func (f *fakeExerciseRepo) UpsertByName(_ context.Context, exercises []db_models.Exercise) error {
	for _, candidate := range exercises {
		exists := false
		for _, row := range f.rows {
			if row.Name == candidate.Name {
				exists = true
				break
			}
		}
		if !exists {
			candidate.ID = uuid.New()
			f.rows = append(f.rows, candidate)
		}
	}
	return nil
}

const samplePlanJSON = `{
	"program_name": "Hypertrophy Block",
	"description": "Push/pull split",
	"weekly_split": "push_pull",
	"duration_weeks": 6,
	"sessions": [
		{
			"day_of_week": 1,
			"session_name": "Push Day",
			"session_type": "strength",
			"estimated_duration_minutes": 60,
			"exercises": [
				{"name": "Bench Press", "target_muscle": "chest", "equipment": "barbell", "sets": 4, "reps": "6-8", "rest_seconds": 120, "notes": ""},
				{"name": "Overhead Press", "target_muscle": "shoulders", "equipment": "barbell", "sets": 3, "reps": "8-10", "rest_seconds": 90, "notes": "strict form"}
			]
		},
		{
			"day_of_week": 3,
			"session_name": "Pull Day",
			"session_type": "strength",
			"estimated_duration_minutes": 55,
			"exercises": [
				{"name": "Deadlift", "target_muscle": "back", "equipment": "barbell", "sets": 3, "reps": "5", "rest_seconds": 180, "notes": ""},
				{"name": "Bench Press", "target_muscle": "chest", "equipment": "barbell", "sets": 3, "reps": "10", "rest_seconds": 90, "notes": ""}
			]
		}
	]
}`

func newWorkoutServiceForParsing() (*WorkoutService, *fakeExerciseRepo) {
	exercises := &fakeExerciseRepo{}
	svc := &WorkoutService{
		users:     newFakeUserRepo(),
		exercises: exercises,
		logger:    testLogger(),
	}
	return svc, exercises
}

func TestBuildProgramFromGeneratedPlan(t *testing.T) {
	svc, _ := newWorkoutServiceForParsing()

	var plan generatedPlan
	require.NoError(t, json.Unmarshal([]byte(utils.CleanJSONResponse("```json\n"+samplePlanJSON+"\n```")), &plan))

	userID := uuid.New()
	program := svc.buildProgram(userID, "the prompt", plan)

	assert.Equal(t, "Hypertrophy Block", program.Name)
	assert.Equal(t, db_models.ProgramActive, program.Status)
	assert.Equal(t, userID, program.UserID)
	require.NotNil(t, program.AIGenerationPrompt)

	// 6 weeks of runway between start and end.
	assert.Equal(t, int64(6*7*24*3600), program.EndDate-program.StartDate)

	require.Len(t, program.Sessions, 2)
	assert.Equal(t, 0, program.Sessions[0].OrderIndex)
	assert.Equal(t, 1, program.Sessions[1].OrderIndex)
	assert.Equal(t, "Push Day", program.Sessions[0].SessionName)
	assert.Equal(t, userID, program.Sessions[0].UserID)

	exercises := program.Sessions[0].Exercises
	require.Len(t, exercises, 2)
	assert.Equal(t, "Bench Press", exercises[0].ExerciseName)
	assert.Equal(t, 4, exercises[0].Sets)
	assert.Equal(t, "6-8", exercises[0].Reps)
	require.NotNil(t, exercises[0].RestSeconds)
	assert.Equal(t, 120, *exercises[0].RestSeconds)
	assert.Nil(t, exercises[0].Notes)
	require.NotNil(t, exercises[1].Notes)
	assert.Equal(t, "strict form", *exercises[1].Notes)
}

func TestBuildProgramDefaults(t *testing.T) {
	svc, _ := newWorkoutServiceForParsing()

	plan := generatedPlan{Sessions: []generatedSession{{SessionName: "Day 1"}}}
	program := svc.buildProgram(uuid.New(), "p", plan)

	assert.Equal(t, "Personalized Training Program", program.Name)
	assert.Equal(t, int64(defaultProgramWeeks*7*24*3600), program.EndDate-program.StartDate)
}

func TestSeedExerciseCatalogDeduplicates(t *testing.T) {
	svc, exercises := newWorkoutServiceForParsing()

	var plan generatedPlan
	require.NoError(t, json.Unmarshal([]byte(samplePlanJSON), &plan))

	svc.seedExerciseCatalog(context.Background(), plan)

	// Bench Press appears in both sessions but is seeded once.
	names := map[string]int{}
	for _, row := range exercises.rows {
		names[row.Name]++
	}
	assert.Equal(t, 1, names["Bench Press"])
	assert.Equal(t, 1, names["Overhead Press"])
	assert.Equal(t, 1, names["Deadlift"])
	assert.Len(t, exercises.rows, 3)

	// Seeding again adds nothing.
	svc.seedExerciseCatalog(context.Background(), plan)
	assert.Len(t, exercises.rows, 3)
}

func TestLogWorkoutRejectsForeignSession(t *testing.T) {
	users := newFakeUserRepo()
	workouts := &fakeWorkoutRepo{}
	svc := NewWorkoutService(users, workouts, &fakeExerciseRepo{}, nil, nil, testLogger())

	owner := uuid.New()
	session := &db_models.WorkoutSession{UserID: owner}
	session.ID = uuid.New()
	workouts.sessions = append(workouts.sessions, session)

	req := request_models.LogWorkoutRequest{
		SessionID:       session.ID.String(),
		DurationMinutes: 45,
		Exercises: []request_models.ExerciseLogEntry{
			{ExerciseName: "Bench Press", Sets: []request_models.SetEntry{{Reps: 8, Weight: 60, Completed: true}}},
		},
	}

	_, err := svc.LogWorkout(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, utils.ErrWorkoutNotFound)

	log, err := svc.LogWorkout(context.Background(), owner, req)
	require.NoError(t, err)
	assert.Equal(t, 45, log.DurationMinutes)
	require.Len(t, workouts.logs, 1)
	require.Len(t, workouts.logs[0].Exercises, 1)
}

type fakeWorkoutRepo struct {
	programs []*db_models.WorkoutProgram
	sessions []*db_models.WorkoutSession
	logs     []*db_models.WorkoutLog
}

func (f *fakeWorkoutRepo) ArchiveActivePrograms(_ context.Context, userID uuid.UUID) error {
	for _, program := range f.programs {
		if program.UserID == userID && program.Status == db_models.ProgramActive {
			program.Status = db_models.ProgramArchived
		}
	}
	return nil
}

func (f *fakeWorkoutRepo) InsertProgram(_ context.Context, program *db_models.WorkoutProgram) error {
	program.ID = uuid.New()
	f.programs = append(f.programs, program)
	return nil
}

func (f *fakeWorkoutRepo) FindActiveProgram(_ context.Context, userID uuid.UUID) (*db_models.WorkoutProgram, error) {
	for _, program := range f.programs {
		if program.UserID == userID && program.Status == db_models.ProgramActive {
			return program, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkoutRepo) FindSessionByID(_ context.Context, sessionID uuid.UUID) (*db_models.WorkoutSession, error) {
	for _, session := range f.sessions {
		if session.ID == sessionID {
			return session, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkoutRepo) InsertLog(_ context.Context, log *db_models.WorkoutLog) error {
	log.ID = uuid.New()
	f.logs = append(f.logs, log)
	return nil
}
