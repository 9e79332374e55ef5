package response_models

type UserProfileResponse struct {
	ID               string  `json:"id"`
	Phone            string  `json:"phone"`
	PhoneCountryCode string  `json:"phone_country_code"`
	Email            *string `json:"email,omitempty"`

	Name            *string  `json:"name,omitempty"`
	Age             *int     `json:"age,omitempty"`
	WeightKg        *float64 `json:"weight_kg,omitempty"`
	HeightCm        *float64 `json:"height_cm,omitempty"`
	Gender          *string  `json:"gender,omitempty"`
	FitnessGoal     *string  `json:"fitness_goal,omitempty"`
	ExperienceLevel *string  `json:"experience_level,omitempty"`
	ActivityLevel   *string  `json:"activity_level,omitempty"`

	// Decrypted for the caller; the encrypted column never leaves the server.
	MedicalConditions *string `json:"medical_conditions,omitempty"`

	Injuries      []string `json:"injuries"`
	GymAccess     bool     `json:"gym_access"`
	HomeEquipment []string `json:"home_equipment"`

	PreferredLanguage    string `json:"preferred_language"`
	Units                string `json:"units"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
	ProfileCompleted     bool   `json:"profile_completed"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

type WeeklyScheduleResponse struct {
	DayOfWeek       int     `json:"day_of_week"`
	Available       bool    `json:"available"`
	PreferredTime   *string `json:"preferred_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
}

type ProgressPhotoResponse struct {
	ID        string   `json:"id"`
	ImageURL  string   `json:"image_url"`
	WeightKg  *float64 `json:"weight_kg,omitempty"`
	CreatedAt int64    `json:"created_at"`
}
