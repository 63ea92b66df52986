package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/app/commands"
)

type stubStore struct {
	records map[string]IdempotencyRecord
}

func newStubStore() *stubStore {
	return &stubStore{records: make(map[string]IdempotencyRecord)}
}

func (s *stubStore) Get(ctx context.Context, key string) (IdempotencyRecord, bool, error) {
	rec, ok := s.records[key]
	return rec, ok, nil
}

func (s *stubStore) Save(ctx context.Context, rec IdempotencyRecord) error {
	s.records[rec.Key] = rec
	return nil
}

type testCommand struct {
	ID      string
	IdemKey string
}

func (c testCommand) Key() string            { return "test.command" }
func (c testCommand) IdempotencyKey() string { return c.IdemKey }
func (c testCommand) ResultPrototype() any   { return &testResult{} }

type testResult struct {
	Value string `json:"value"`
}

func TestIdempotencyReplaysResult(t *testing.T) {
	calls := 0
	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("test.command", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &testResult{Value: "first"}, nil
	})
	chained := ChainCommands(bus, Idempotency(newStubStore(), nil))

	ctx := context.Background()
	first, err := chained.Dispatch(ctx, testCommand{ID: "1", IdemKey: "key-1"})
	if err != nil {
		t.Fatalf("first dispatch: %v", err)
	}
	second, err := chained.Dispatch(ctx, testCommand{ID: "2", IdemKey: "key-1"})
	if err != nil {
		t.Fatalf("second dispatch: %v", err)
	}

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if first.(*testResult).Value != "first" || second.(*testResult).Value != "first" {
		t.Fatalf("replayed result mismatch: %+v vs %+v", first, second)
	}
}

func TestIdempotencyCachesErrors(t *testing.T) {
	calls := 0
	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("test.command", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return nil, errors.New("boom")
	})
	chained := ChainCommands(bus, Idempotency(newStubStore(), nil))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := chained.Dispatch(ctx, testCommand{IdemKey: "key-err"}); err == nil || err.Error() != "boom" {
			t.Fatalf("dispatch %d: got %v, want boom", i, err)
		}
	}
	if calls != 1 {
		t.Fatalf("handler ran %d times, want cached failure", calls)
	}
}

func TestIdempotencySkipsEmptyKey(t *testing.T) {
	calls := 0
	bus := commands.NewInMemoryBus()
	bus.RegisterRaw("test.command", func(ctx context.Context, cmd commands.Command) (any, error) {
		calls++
		return &testResult{Value: time.Now().String()}, nil
	})
	chained := ChainCommands(bus, Idempotency(newStubStore(), nil))

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := chained.Dispatch(ctx, testCommand{}); err != nil {
			t.Fatalf("dispatch: %v", err)
		}
	}
	if calls != 2 {
		t.Fatalf("handler ran %d times, want every dispatch", calls)
	}
}
