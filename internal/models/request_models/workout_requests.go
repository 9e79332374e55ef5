package request_models

type SetEntry struct {
	Reps      int     `json:"reps" binding:"min=0"`
	Weight    float64 `json:"weight" binding:"min=0"`
	Completed bool    `json:"completed"`
}

type ExerciseLogEntry struct {
	ExerciseName string     `json:"exercise_name" binding:"required"`
	Sets         []SetEntry `json:"sets" binding:"required,dive"`
}

type LogWorkoutRequest struct {
	SessionID       string             `json:"session_id" binding:"required,uuid"`
	DurationMinutes int                `json:"duration_minutes" binding:"required,min=1"`
	Exercises       []ExerciseLogEntry `json:"exercises" binding:"required,dive"`
	Notes           *string            `json:"notes"`
}
