package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"fitai/internal/models/db_models"
	"fitai/internal/models/request_models"
	"fitai/internal/models/response_models"
	"fitai/internal/repositories"
	"fitai/pkg/utils"
)

const defaultProgramWeeks = 4

type WorkoutServiceInterface interface {
	GeneratePlan(ctx context.Context, userID uuid.UUID) (*response_models.ProgramResponse, error)
	GetActiveProgram(ctx context.Context, userID uuid.UUID) (*response_models.ProgramResponse, error)
	LogWorkout(ctx context.Context, userID uuid.UUID, req request_models.LogWorkoutRequest) (*response_models.WorkoutLogResponse, error)
}

type WorkoutService struct {
	users     repositories.UserRepository
	workouts  repositories.WorkoutRepository
	exercises repositories.ExerciseRepository
	gemini    *utils.GeminiClient
	encryptor *utils.Encryptor
	logger    *zap.SugaredLogger
}

func NewWorkoutService(
	users repositories.UserRepository,
	workouts repositories.WorkoutRepository,
	exercises repositories.ExerciseRepository,
	gemini *utils.GeminiClient,
	encryptor *utils.Encryptor,
	logger *zap.SugaredLogger,
) WorkoutServiceInterface {
	return &WorkoutService{
		users:     users,
		workouts:  workouts,
		exercises: exercises,
		gemini:    gemini,
		encryptor: encryptor,
		logger:    logger,
	}
}

// generatedPlan mirrors the JSON shape the model is instructed to emit.
type generatedPlan struct {
	ProgramName   string             `json:"program_name"`
	Description   string             `json:"description"`
	WeeklySplit   string             `json:"weekly_split"`
	DurationWeeks int                `json:"duration_weeks"`
	Sessions      []generatedSession `json:"sessions"`
}

type generatedSession struct {
	DayOfWeek                int                 `json:"day_of_week"`
	SessionName              string              `json:"session_name"`
	SessionType              string              `json:"session_type"`
	EstimatedDurationMinutes int                 `json:"estimated_duration_minutes"`
	Exercises                []generatedExercise `json:"exercises"`
}

type generatedExercise struct {
	Name         string `json:"name"`
	TargetMuscle string `json:"target_muscle"`
	Equipment    string `json:"equipment"`
	Sets         int    `json:"sets"`
	Reps         string `json:"reps"`
	RestSeconds  int    `json:"rest_seconds"`
	Notes        string `json:"notes"`
}

func (s *WorkoutService) GeneratePlan(ctx context.Context, userID uuid.UUID) (*response_models.ProgramResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	if !user.ProfileCompleted {
		return nil, utils.ErrProfileIncomplete
	}

	schedule, err := s.users.GetWeeklySchedule(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	prompt := s.buildPlanPrompt(user, schedule)
	raw, err := s.gemini.GenerateJSON(ctx, prompt)
	if err != nil {
		s.logger.Errorw("plan generation failed", "userId", userID, "error", err)
		return nil, utils.ErrWorkoutGenerationFailed
	}

	var plan generatedPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		s.logger.Errorw("plan response was not valid JSON", "userId", userID, "error", err)
		return nil, utils.ErrWorkoutGenerationFailed
	}
	if len(plan.Sessions) == 0 {
		return nil, utils.ErrWorkoutGenerationFailed
	}

	program := s.buildProgram(userID, prompt, plan)

	if err := s.workouts.ArchiveActivePrograms(ctx, userID); err != nil {
		return nil, utils.ErrDatabaseError
	}
	if err := s.workouts.InsertProgram(ctx, program); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.seedExerciseCatalog(ctx, plan)

	return toProgramResponse(program), nil
}

func (s *WorkoutService) GetActiveProgram(ctx context.Context, userID uuid.UUID) (*response_models.ProgramResponse, error) {
	program, err := s.workouts.FindActiveProgram(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if program == nil {
		return nil, utils.ErrWorkoutNotFound
	}
	return toProgramResponse(program), nil
}

func (s *WorkoutService) LogWorkout(ctx context.Context, userID uuid.UUID, req request_models.LogWorkoutRequest) (*response_models.WorkoutLogResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, utils.NewAPIError(400, "invalid session id")
	}

	session, err := s.workouts.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if session == nil || session.UserID != userID {
		return nil, utils.ErrWorkoutNotFound
	}

	log := &db_models.WorkoutLog{
		UserID:          userID,
		SessionID:       sessionID,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		CompletedAt:     time.Now().Unix(),
	}
	for _, entry := range req.Exercises {
		setsData, err := json.Marshal(entry.Sets)
		if err != nil {
			return nil, utils.NewAPIError(400, "invalid sets payload")
		}
		log.Exercises = append(log.Exercises, db_models.ExerciseLog{
			ExerciseName: entry.ExerciseName,
			SetsData:     datatypes.JSON(setsData),
		})
	}

	if err := s.workouts.InsertLog(ctx, log); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.WorkoutLogResponse{
		ID:              log.ID.String(),
		SessionID:       sessionID.String(),
		DurationMinutes: log.DurationMinutes,
		Notes:           log.Notes,
		CompletedAt:     log.CompletedAt,
	}, nil
}

func (s *WorkoutService) buildPlanPrompt(user *db_models.User, schedule []db_models.WeeklySchedule) string {
	var b strings.Builder
	b.WriteString("You are an expert personal trainer. Create a weekly workout program for the following client.\n\n")

	writeField := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, value)
		}
	}
	writeField("Name", deref(user.Name))
	if user.Age != nil {
		fmt.Fprintf(&b, "Age: %d\n", *user.Age)
	}
	if user.WeightKg != nil {
		fmt.Fprintf(&b, "Weight: %.1f kg\n", *user.WeightKg)
	}
	if user.HeightCm != nil {
		fmt.Fprintf(&b, "Height: %.0f cm\n", *user.HeightCm)
	}
	writeField("Gender", deref(user.Gender))
	writeField("Goal", deref(user.FitnessGoal))
	writeField("Experience level", deref(user.ExperienceLvl))
	writeField("Activity level", deref(user.ActivityLevel))
	if len(user.Injuries) > 0 {
		writeField("Injuries to work around", strings.Join(user.Injuries, ", "))
	}
	if user.MedicalConditionsEncrypted != nil {
		if conditions, err := s.encryptor.Decrypt(*user.MedicalConditionsEncrypted); err == nil && conditions != "" {
			writeField("Medical conditions", conditions)
		}
	}
	if user.GymAccess {
		b.WriteString("Equipment: full gym access\n")
	} else if len(user.HomeEquipment) > 0 {
		fmt.Fprintf(&b, "Equipment: home only (%s)\n", strings.Join(user.HomeEquipment, ", "))
	} else {
		b.WriteString("Equipment: bodyweight only\n")
	}

	if len(schedule) > 0 {
		b.WriteString("\nWeekly availability (day_of_week 0 = Sunday):\n")
		for _, day := range schedule {
			if !day.Available {
				continue
			}
			fmt.Fprintf(&b, "- day %d", day.DayOfWeek)
			if day.PreferredTime != nil {
				fmt.Fprintf(&b, ", %s", *day.PreferredTime)
			}
			if day.DurationMinutes != nil {
				fmt.Fprintf(&b, ", %d minutes", *day.DurationMinutes)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(`
Respond with ONLY a JSON object, no prose, matching exactly this shape:
{
  "program_name": string,
  "description": string,
  "weekly_split": string,
  "duration_weeks": number,
  "sessions": [
    {
      "day_of_week": number,
      "session_name": string,
      "session_type": string,
      "estimated_duration_minutes": number,
      "exercises": [
        {
          "name": string,
          "target_muscle": string,
          "equipment": string,
          "sets": number,
          "reps": string,
          "rest_seconds": number,
          "notes": string
        }
      ]
    }
  ]
}
Only schedule sessions on the available days.`)

	return b.String()
}

func (s *WorkoutService) buildProgram(userID uuid.UUID, prompt string, plan generatedPlan) *db_models.WorkoutProgram {
	weeks := plan.DurationWeeks
	if weeks <= 0 {
		weeks = defaultProgramWeeks
	}
	now := time.Now()

	program := &db_models.WorkoutProgram{
		UserID:             userID,
		Name:               plan.ProgramName,
		Description:        optional(plan.Description),
		WeeklySplit:        optional(plan.WeeklySplit),
		AIGenerationPrompt: &prompt,
		StartDate:          now.Unix(),
		EndDate:            now.AddDate(0, 0, weeks*7).Unix(),
		Status:             db_models.ProgramActive,
	}
	if program.Name == "" {
		program.Name = "Personalized Training Program"
	}

	for i, session := range plan.Sessions {
		dbSession := db_models.WorkoutSession{
			UserID:                   userID,
			DayOfWeek:                session.DayOfWeek,
			SessionName:              session.SessionName,
			SessionType:              optional(session.SessionType),
			EstimatedDurationMinutes: optionalInt(session.EstimatedDurationMinutes),
			OrderIndex:               i,
		}
		for j, exercise := range session.Exercises {
			dbSession.Exercises = append(dbSession.Exercises, db_models.SessionExercise{
				ExerciseName: exercise.Name,
				TargetMuscle: optional(exercise.TargetMuscle),
				Equipment:    optional(exercise.Equipment),
				Sets:         exercise.Sets,
				Reps:         exercise.Reps,
				RestSeconds:  optionalInt(exercise.RestSeconds),
				Notes:        optional(exercise.Notes),
				OrderIndex:   j,
			})
		}
		program.Sessions = append(program.Sessions, dbSession)
	}
	return program
}

// seedExerciseCatalog copies new exercise names from the generated plan into
// the searchable catalog. Failures only log; the program itself is already
// saved.
func (s *WorkoutService) seedExerciseCatalog(ctx context.Context, plan generatedPlan) {
	seen := map[string]bool{}
	var rows []db_models.Exercise
	for _, session := range plan.Sessions {
		for _, exercise := range session.Exercises {
			name := strings.TrimSpace(exercise.Name)
			if name == "" || seen[strings.ToLower(name)] {
				continue
			}
			seen[strings.ToLower(name)] = true
			rows = append(rows, db_models.Exercise{
				Name:      name,
				BodyPart:  optional(exercise.TargetMuscle),
				Equipment: optional(exercise.Equipment),
				Target:    optional(exercise.TargetMuscle),
			})
		}
	}
	if err := s.exercises.UpsertByName(ctx, rows); err != nil {
		s.logger.Errorw("failed to seed exercise catalog", "error", err)
	}
}

func toProgramResponse(program *db_models.WorkoutProgram) *response_models.ProgramResponse {
	resp := &response_models.ProgramResponse{
		ID:          program.ID.String(),
		Name:        program.Name,
		Description: program.Description,
		WeeklySplit: program.WeeklySplit,
		StartDate:   program.StartDate,
		EndDate:     program.EndDate,
		Status:      string(program.Status),
		Sessions:    []response_models.SessionResponse{},
	}
	for _, session := range program.Sessions {
		sessionResp := response_models.SessionResponse{
			ID:                       session.ID.String(),
			DayOfWeek:                session.DayOfWeek,
			SessionName:              session.SessionName,
			SessionType:              session.SessionType,
			EstimatedDurationMinutes: session.EstimatedDurationMinutes,
			OrderIndex:               session.OrderIndex,
			Exercises:                []response_models.SessionExerciseResponse{},
		}
		for _, exercise := range session.Exercises {
			sessionResp.Exercises = append(sessionResp.Exercises, response_models.SessionExerciseResponse{
				ID:           exercise.ID.String(),
				ExerciseName: exercise.ExerciseName,
				TargetMuscle: exercise.TargetMuscle,
				Equipment:    exercise.Equipment,
				Sets:         exercise.Sets,
				Reps:         exercise.Reps,
				RestSeconds:  exercise.RestSeconds,
				Notes:        exercise.Notes,
				OrderIndex:   exercise.OrderIndex,
			})
		}
		resp.Sessions = append(resp.Sessions, sessionResp)
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n <= 0 {
		return nil
	}
	return &n
}
