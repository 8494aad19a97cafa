package workflow

import (
	"time"

	"NewsPoster/internal/domain"
)

// BuildRunRecord snapshots a completed run for audit persistence.
func BuildRunRecord(state *State, finishedAt time.Time) domain.RunRecord {
	results := append([]domain.PostResult(nil), state.PublishResults...)
	return domain.RunRecord{
		ID:         state.RunID,
		Topic:      state.Topic,
		AutoPosted: state.AutoPublish,
		Results:    results,
		FinishedAt: finishedAt,
	}
}
