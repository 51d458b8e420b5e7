package models

// GradeResult is the outcome of grading one submitted answer.
type GradeResult struct {
	Correct   bool   `json:"correct"`
	Submitted string `json:"submitted"`
	Expected  string `json:"expected"`
}

// SessionView is a read-only snapshot of the active practice session,
// shaped for rendering. Position is zero-based.
type SessionView struct {
	Card       Card   `json:"card"`
	Position   int    `json:"position"`
	Total      int    `json:"total"`
	Correct    int    `json:"correct"`
	Incorrect  int    `json:"incorrect"`
	Pending    bool   `json:"pending"`
	LastResult bool   `json:"last_result"`
	Submitted  string `json:"submitted"`
}

// SessionSummary is derived when a session leaves the active state and is
// shown exactly once. Sessions themselves are never persisted; only the
// per-card counters survive.
type SessionSummary struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	Total     int `json:"total"`
}
