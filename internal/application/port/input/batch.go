package input

import "account-automator/internal/domain/entity"

// BatchResult is an insertion-ordered mapping of request label to result.
type BatchResult struct {
	Labels  []string                           `json:"labels"`
	Results map[string]entity.AutomationResult `json:"results"`
	// Halted is set when processing stopped early for manual intervention
	// or cancellation.
	Halted bool `json:"halted"`
	// Remaining counts requests that were never attempted.
	Remaining int `json:"remaining"`
}

func NewBatchResult() *BatchResult {
	return &BatchResult{Results: make(map[string]entity.AutomationResult)}
}

func (b *BatchResult) Add(label string, result entity.AutomationResult) {
	if _, exists := b.Results[label]; !exists {
		b.Labels = append(b.Labels, label)
	}
	b.Results[label] = result
}

func (b *BatchResult) Get(label string) (entity.AutomationResult, bool) {
	r, ok := b.Results[label]
	return r, ok
}

func (b *BatchResult) Len() int {
	return len(b.Labels)
}

// Processed is the number of attempted requests, i.e. the offset of the first
// remaining one.
func (b *BatchResult) Processed() int {
	return len(b.Labels)
}
