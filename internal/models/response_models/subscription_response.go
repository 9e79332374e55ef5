package response_models

type SubscriptionResponse struct {
	Plan               string `json:"plan"`
	Status             string `json:"status"`
	TrialEndsAt        *int64 `json:"trial_ends_at,omitempty"`
	CurrentPeriodStart *int64 `json:"current_period_start,omitempty"`
	CurrentPeriodEnd   *int64 `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
}

type CheckoutResponse struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
