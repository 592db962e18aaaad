package chat

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/financas-pessoais/internal/domain/assistant"
	"github.com/stretchr/testify/require"
)

func TestBroadcaster_DeliversOnlyToPair(t *testing.T) {
	req := require.New(t)
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	income := b.Subscribe(ctx, "u-1", assistant.IDIncome)
	other := b.Subscribe(ctx, "u-2", assistant.IDIncome)

	b.Invalidate("u-1", assistant.IDIncome)

	select {
	case evt := <-income:
		req.Equal("u-1", evt.UserID)
		req.Equal(assistant.IDIncome, evt.AssistantID)
		req.False(evt.At.IsZero())
	case <-time.After(time.Second):
		t.Fatal("invalidação não entregue")
	}
	req.Empty(other)
}

func TestBroadcaster_NeverBlocks(t *testing.T) {
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx, "u-1", assistant.IDExpenditure)
	for i := 0; i < 10; i++ {
		b.Invalidate("u-1", assistant.IDExpenditure)
	}
	require.Len(t, ch, 1)
}

func TestBroadcaster_UnsubscribeOnCancel(t *testing.T) {
	req := require.New(t)
	b := NewBroadcaster()
	ctx, cancel := context.WithCancel(context.Background())

	ch := b.Subscribe(ctx, "u-1", assistant.IDIncome)
	req.Equal(1, b.Subscribers("u-1", assistant.IDIncome))

	cancel()
	req.Eventually(func() bool {
		return b.Subscribers("u-1", assistant.IDIncome) == 0
	}, time.Second, 10*time.Millisecond)

	_, open := <-ch
	req.False(open)
}
