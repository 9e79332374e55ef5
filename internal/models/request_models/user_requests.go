package request_models

type WeeklyScheduleEntry struct {
	DayOfWeek       int     `json:"day_of_week" binding:"min=0,max=6"`
	Available       bool    `json:"available"`
	PreferredTime   *string `json:"preferred_time" binding:"omitempty,oneof=morning afternoon evening"`
	DurationMinutes *int    `json:"duration_minutes" binding:"omitempty,min=10,max=240"`
}

type CompleteProfileRequest struct {
	Name              string                `json:"name" binding:"required"`
	Age               int                   `json:"age" binding:"required,min=13,max=120"`
	WeightKg          float64               `json:"weight_kg" binding:"required,gt=0"`
	HeightCm          float64               `json:"height_cm" binding:"required,gt=0"`
	Gender            string                `json:"gender" binding:"required,oneof=male female other prefer_not_to_say"`
	FitnessGoal       string                `json:"fitness_goal" binding:"required"`
	ExperienceLevel   string                `json:"experience_level" binding:"required,oneof=beginner intermediate advanced"`
	ActivityLevel     string                `json:"activity_level" binding:"required,oneof=sedentary lightly_active moderately_active very_active"`
	GymAccess         bool                  `json:"gym_access"`
	HomeEquipment     []string              `json:"home_equipment"`
	MedicalConditions *string               `json:"medical_conditions"`
	Injuries          []string              `json:"injuries"`
	WeeklySchedule    []WeeklyScheduleEntry `json:"weekly_schedule" binding:"required,dive"`
	PreferredLanguage *string               `json:"preferred_language"`
	Units             *string               `json:"units" binding:"omitempty,oneof=metric imperial"`
}

// UpdateProfileRequest is the partial-update shape; nil means "leave as is".
type UpdateProfileRequest struct {
	Name              *string               `json:"name"`
	Age               *int                  `json:"age" binding:"omitempty,min=13,max=120"`
	WeightKg          *float64              `json:"weight_kg" binding:"omitempty,gt=0"`
	HeightCm          *float64              `json:"height_cm" binding:"omitempty,gt=0"`
	Gender            *string               `json:"gender" binding:"omitempty,oneof=male female other prefer_not_to_say"`
	FitnessGoal       *string               `json:"fitness_goal"`
	ExperienceLevel   *string               `json:"experience_level" binding:"omitempty,oneof=beginner intermediate advanced"`
	ActivityLevel     *string               `json:"activity_level" binding:"omitempty,oneof=sedentary lightly_active moderately_active very_active"`
	GymAccess         *bool                 `json:"gym_access"`
	HomeEquipment     []string              `json:"home_equipment"`
	MedicalConditions *string               `json:"medical_conditions"`
	Injuries          []string              `json:"injuries"`
	WeeklySchedule    []WeeklyScheduleEntry `json:"weekly_schedule" binding:"omitempty,dive"`
	PreferredLanguage *string               `json:"preferred_language"`
	Units             *string               `json:"units" binding:"omitempty,oneof=metric imperial"`
	Notifications     *bool                 `json:"notifications_enabled"`
}
