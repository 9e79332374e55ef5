package request_models

type SendMessageRequest struct {
	Message  string  `json:"message" binding:"required,max=4000"`
	Language *string `json:"language"`
}
