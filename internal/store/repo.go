package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	LessonID     string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// RewardKind distinguishes the two reward tiers.
type RewardKind string

const (
	// RewardAnswer is the small per-correct-answer trickle.
	RewardAnswer RewardKind = "answer"
	// RewardLesson is the lump sum paid when a lesson completes.
	RewardLesson RewardKind = "lesson"
)

// RewardEventData captures one XP / words-learned increment.
type RewardEventData struct {
	Kind       RewardKind
	LessonID   string
	ExerciseID string
	SessionID  string
	XP         int
	Words      int
}

// RewardEvent is a stored reward event.
type RewardEvent struct {
	Sequence  int64
	Timestamp time.Time
	RewardEventData
}

// RewardTotals is the running sum over all reward events.
type RewardTotals struct {
	XP           int
	WordsLearned int
	Lessons      int
}

// EventRepo provides append and query access to the event log.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by id, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendReward records an XP / words-learned increment.
	AppendReward(ctx context.Context, data RewardEventData) error

	// QueryRewards returns reward events, newest first.
	QueryRewards(ctx context.Context, opts QueryOpts) ([]RewardEvent, error)

	// RewardTotals sums every reward event.
	RewardTotals(ctx context.Context) (RewardTotals, error)

	// ClearRewards deletes every reward event.
	ClearRewards(ctx context.Context) error
}
