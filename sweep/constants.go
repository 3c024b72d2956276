package sweep

const (
	// Per-user sweep job emitted by the scheduler, pending aggregation.
	TopicPendingReport = "topic.pending_report"
	// Result of one user's sweep, consumed by the reporter.
	TopicSweepResult = "topic.sweep_result"
)
