package controllers_fx

import (
	"go.uber.org/fx"

	"fitai/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAuthController),
	fx.Provide(controllers.NewUserController),
	fx.Provide(controllers.NewWorkoutController),
	fx.Provide(controllers.NewNutritionController),
	fx.Provide(controllers.NewChatController),
	fx.Provide(controllers.NewSubscriptionController),
	fx.Provide(controllers.NewExerciseController))
