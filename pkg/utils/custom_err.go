package utils

import (
	"errors"
	"net/http"
)

// APIError is an operational error: it carries the HTTP status and the
// user-facing message, plus optional machine-readable details (quota
// breakdowns, validation fields).
type APIError struct {
	StatusCode int
	Message    string
	Details    interface{}
}

func (e *APIError) Error() string {
	return e.Message
}

func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{StatusCode: statusCode, Message: message}
}

func NewAPIErrorWithDetails(statusCode int, message string, details interface{}) *APIError {
	return &APIError{StatusCode: statusCode, Message: message, Details: details}
}

var (
	ErrDatabaseError = errors.New("database error")

	// Auth
	ErrCodeExpired         = NewAPIError(http.StatusBadRequest, "Code expired. Request a new code.")
	ErrCodeInvalid         = NewAPIError(http.StatusBadRequest, "Invalid code")
	ErrTooManyAttempts     = NewAPIError(http.StatusBadRequest, "Too many attempts. Request a new code.")
	ErrTooManyCodeRequests = NewAPIError(http.StatusTooManyRequests, "Too many code requests. Try again later.")
	ErrInvalidCredentials  = NewAPIError(http.StatusUnauthorized, "Invalid email or password")
	ErrEmailAlreadyExists  = NewAPIError(http.StatusConflict, "Email already registered")
	ErrEmailNotVerified    = NewAPIError(http.StatusUnauthorized, "Verify your email first")
	ErrSMSDeliveryFailed   = NewAPIError(http.StatusInternalServerError, "Failed to send SMS. Try again.")

	// Users
	ErrUserNotFound           = NewAPIError(http.StatusNotFound, "User not found")
	ErrProfileIncomplete      = NewAPIError(http.StatusBadRequest, "Complete your profile first")
	ErrProfileAlreadyComplete = NewAPIError(http.StatusBadRequest, "Profile already complete")
	ErrInvalidFileType        = NewAPIError(http.StatusBadRequest, "Invalid file type")
	ErrFileTooLarge           = NewAPIError(http.StatusBadRequest, "File too large")

	// Subscriptions
	ErrSubscriptionNotFound  = NewAPIError(http.StatusNotFound, "Subscription not found")
	ErrNoActiveSubscription  = NewAPIError(http.StatusBadRequest, "No active subscription to cancel")
	ErrCheckoutFailed        = NewAPIError(http.StatusInternalServerError, "Failed to create checkout session")
	ErrInvalidWebhookPayload = NewAPIError(http.StatusBadRequest, "Invalid webhook payload")

	// Workouts / nutrition / chat
	ErrWorkoutNotFound         = NewAPIError(http.StatusNotFound, "Workout not found")
	ErrWorkoutGenerationFailed = NewAPIError(http.StatusInternalServerError, "Workout generation failed")
	ErrMealPlanFailed          = NewAPIError(http.StatusInternalServerError, "Meal plan generation failed")
	ErrRecipeSearchFailed      = NewAPIError(http.StatusInternalServerError, "Recipe search failed")
	ErrImageAnalysisFailed     = NewAPIError(http.StatusInternalServerError, "Food image analysis failed")
	ErrChatFailed              = NewAPIError(http.StatusInternalServerError, "Failed to process message")
	ErrExerciseNotFound        = NewAPIError(http.StatusNotFound, "Exercise not found")
)
