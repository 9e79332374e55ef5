package response_models

type ChatReply struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

type ChatHistoryEntry struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}
