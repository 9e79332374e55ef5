package request_models

type CheckoutRequest struct {
	Plan       string `json:"plan" binding:"required,oneof=base pro unlimited"`
	SuccessURL string `json:"success_url" binding:"omitempty,url"`
	CancelURL  string `json:"cancel_url" binding:"omitempty,url"`
}
