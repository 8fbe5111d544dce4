package services

// Result is the structured outcome of an ingestion or taxonomy operation.
// Repo-level failures are folded into it instead of propagating upward.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Count   int64  `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}
