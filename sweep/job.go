package sweep

// UserSweepJob asks the aggregator to build and dispatch one user's report.
// Serialized as JSON on the event bus.
type UserSweepJob struct {
	// SweepID groups every job of one scheduled pass.
	SweepID string `json:"sweep_id"`
	UserID  string `json:"user_id"`
}

// SweepResult summarizes one user's sweep for the reporter.
type SweepResult struct {
	SweepID string `json:"sweep_id"`
	UserID  string `json:"user_id"`

	// Dramas the user tracks.
	TrackedCount int `json:"tracked_count"`
	// Dramas with a non-empty delta this pass.
	UpdatedCount int `json:"updated_count"`
	// Dramas skipped because their fetch failed.
	FailedCount int `json:"failed_count"`

	// Whether a digest was successfully delivered.
	Notified bool `json:"notified"`
}
