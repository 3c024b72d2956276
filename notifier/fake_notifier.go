package notifier

import (
	"context"
	"sync"

	"github.com/Luismorlan/dramachaser/model"
)

// FakeNotifier records every delivery for assertions in tests. Thread-safe
// because sweeps may notify from multiple goroutines.
type FakeNotifier struct {
	mu sync.Mutex

	// Deliveries maps user id to the reports delivered to that user, in
	// delivery order.
	Deliveries map[string][]model.Report

	// Err, when set, is returned from every Notify call.
	Err error
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{Deliveries: map[string][]model.Report{}}
}

func (n *FakeNotifier) Notify(ctx context.Context, userID string, report model.Report) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Err != nil {
		return n.Err
	}
	n.Deliveries[userID] = append(n.Deliveries[userID], report)
	return nil
}

// DeliveryCount returns the total number of successful deliveries.
func (n *FakeNotifier) DeliveryCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	count := 0
	for _, reports := range n.Deliveries {
		count += len(reports)
	}
	return count
}
