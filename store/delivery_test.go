package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryLogFiltersPerUser(t *testing.T) {
	ctx := context.Background()
	d := NewDeliveryLog(newTestClient(t))

	shows := []string{"show-1", "show-2", "show-3"}

	undelivered, err := d.FilterUndelivered(ctx, "alice", "drama-1", shows)
	assert.Nil(t, err)
	assert.Equal(t, shows, undelivered)

	assert.Nil(t, d.MarkDelivered(ctx, "alice", "drama-1", []string{"show-1", "show-2"}))

	undelivered, err = d.FilterUndelivered(ctx, "alice", "drama-1", shows)
	assert.Nil(t, err)
	assert.Equal(t, []string{"show-3"}, undelivered)

	// Delivery state is scoped to the user, bob has seen nothing.
	undelivered, err = d.FilterUndelivered(ctx, "bob", "drama-1", shows)
	assert.Nil(t, err)
	assert.Equal(t, shows, undelivered)
}

func TestMarkDeliveredWithNoShowsIsNoop(t *testing.T) {
	ctx := context.Background()
	d := NewDeliveryLog(newTestClient(t))

	assert.Nil(t, d.MarkDelivered(ctx, "alice", "drama-1", []string{}))

	undelivered, err := d.FilterUndelivered(ctx, "alice", "drama-1", []string{"show-1"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"show-1"}, undelivered)
}
