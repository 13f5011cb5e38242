package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type testEvent struct {
	BaseEvent
	value int
}

func (testEvent) EventName() string { return "test.event" }

func TestPublishSync_DeliversToAllSubscribers(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var got []int
	for i := 0; i < 3; i++ {
		bus.Subscribe("test.event", HandlerFunc(func(_ context.Context, event Event) error {
			got = append(got, event.(testEvent).value)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), value: 7}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 deliveries, got %d", len(got))
	}
}

func TestPublishSync_CombinesHandlerErrors(t *testing.T) {
	bus := NewInMemoryBus(nil)

	first := errors.New("first failure")
	second := errors.New("second failure")
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return first }))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return nil }))
	bus.Subscribe("test.event", HandlerFunc(func(context.Context, Event) error { return second }))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Fatalf("expected both handler errors combined, got %v", err)
	}
}

func TestPublish_SurvivesCancelledRequestContext(t *testing.T) {
	bus := NewInMemoryBus(nil)

	var wg sync.WaitGroup
	wg.Add(1)
	var handlerCtxErr error
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, _ Event) error {
		defer wg.Done()
		handlerCtxErr = ctx.Err()
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	bus.Publish(ctx, testEvent{BaseEvent: NewBaseEvent()})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("handler was never invoked")
	}

	if handlerCtxErr != nil {
		t.Fatalf("handler context must be detached from the request, got %v", handlerCtxErr)
	}
}

func TestPublish_NoSubscribersIsNoOp(t *testing.T) {
	bus := NewInMemoryBus(nil)
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
}
