package test

import pkgResponse "task-reminder-bot/pkg/response"

// ExtractRequest is the body of POST /test/extract.
type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractResponse reports what the extractor recognized.
type ExtractResponse struct {
	Text   string                `json:"text"`
	Found  bool                  `json:"found"`
	DueAt  *pkgResponse.DateTime `json:"due_at,omitempty"`
	Reason string                `json:"reason,omitempty"`
}

// SweepResponse mirrors reminder.SweepResult.
type SweepResponse struct {
	Due       int    `json:"due"`
	Delivered int    `json:"delivered"`
	Failed    int    `json:"failed"`
	Skipped   int    `json:"skipped"`
	Marked    int    `json:"marked"`
	Error     string `json:"error,omitempty"`
}
