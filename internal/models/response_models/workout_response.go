package response_models

type ProgramResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	WeeklySplit *string `json:"weekly_split,omitempty"`
	StartDate   int64   `json:"start_date"`
	EndDate     int64   `json:"end_date"`
	Status      string  `json:"status"`

	Sessions []SessionResponse `json:"sessions"`
}

type SessionResponse struct {
	ID                       string  `json:"id"`
	DayOfWeek                int     `json:"day_of_week"`
	SessionName              string  `json:"session_name"`
	SessionType              *string `json:"session_type,omitempty"`
	EstimatedDurationMinutes *int    `json:"estimated_duration_minutes,omitempty"`
	OrderIndex               int     `json:"order_index"`

	Exercises []SessionExerciseResponse `json:"exercises"`
}

type SessionExerciseResponse struct {
	ID           string  `json:"id"`
	ExerciseName string  `json:"exercise_name"`
	TargetMuscle *string `json:"target_muscle,omitempty"`
	Equipment    *string `json:"equipment,omitempty"`
	Sets         int     `json:"sets"`
	Reps         string  `json:"reps"`
	RestSeconds  *int    `json:"rest_seconds,omitempty"`
	Notes        *string `json:"notes,omitempty"`
	OrderIndex   int     `json:"order_index"`
}

type WorkoutLogResponse struct {
	ID              string  `json:"id"`
	SessionID       string  `json:"session_id"`
	DurationMinutes int     `json:"duration_minutes"`
	Notes           *string `json:"notes,omitempty"`
	CompletedAt     int64   `json:"completed_at"`
}
