package response_models

// QuotaDetails is the machine-readable payload of a 403 quota-exceeded
// response, enough for the client to render an upgrade prompt.
type QuotaDetails struct {
	LimitType       string `json:"limitType"`
	CurrentUsage    int    `json:"currentUsage"`
	MaxLimit        int    `json:"maxLimit"`
	Plan            string `json:"plan"`
	UpgradeRequired bool   `json:"upgradeRequired"`
}
