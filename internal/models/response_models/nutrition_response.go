package response_models

// These mirror the JSON schemas the generation prompts demand; parsing into
// them is the only validation the model's reply gets.

type MealPlan struct {
	Name          string  `json:"name"`
	TotalCalories float64 `json:"total_calories"`
	Macros        Macros  `json:"macros"`
	Meals         []Meal  `json:"meals"`
}

type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

type Meal struct {
	Time     string   `json:"time"`
	Items    []string `json:"items"`
	Calories float64  `json:"calories"`
}

type RecipeIngredient struct {
	Item     string `json:"item"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
}

type Recipe struct {
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	PrepTimeMinutes int                `json:"prep_time_minutes"`
	Instructions    []string           `json:"instructions"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	Calories        float64            `json:"calories"`
	ProteinG        float64            `json:"protein_g"`
	CarbsG          float64            `json:"carbs_g"`
	FatG            float64            `json:"fat_g"`
}

type FoodAnalysis struct {
	FoodItem     string  `json:"food_item"`
	Calories     float64 `json:"calories"`
	ProteinG     float64 `json:"protein_g"`
	CarbsG       float64 `json:"carbs_g"`
	FatG         float64 `json:"fat_g"`
	ServingSize  string  `json:"serving_size"`
	HealthRating int     `json:"health_rating"`
}
