package memory

import (
	"context"
	"errors"
	"testing"

	"staybook/internal/app/outbox"
)

type recordingPublisher struct {
	published []outbox.EventRecord
	failAfter int
}

func (p *recordingPublisher) Publish(ctx context.Context, record outbox.EventRecord) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, record)
	return nil
}

func addRecords(t *testing.T, box *Outbox, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if err := box.Add(context.Background(), outbox.EventRecord{ID: id, Name: "reservation.created"}); err != nil {
			t.Fatalf("Add %s: %v", id, err)
		}
	}
}

func TestOutboxFlushWithoutPublisherKeepsRecords(t *testing.T) {
	box := NewOutbox(nil)
	addRecords(t, box, "evt-1", "evt-2")

	if err := box.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := len(box.Pending()); got != 2 {
		t.Fatalf("pending = %d, want records kept without a publisher", got)
	}
}

func TestOutboxFlushPublishesInOrder(t *testing.T) {
	pub := &recordingPublisher{}
	box := NewOutbox(pub)
	addRecords(t, box, "evt-1", "evt-2")

	if err := box.Flush(context.Background()); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if len(pub.published) != 2 || pub.published[0].ID != "evt-1" || pub.published[1].ID != "evt-2" {
		t.Fatalf("published = %+v, want evt-1 then evt-2", pub.published)
	}
	if got := len(box.Pending()); got != 0 {
		t.Fatalf("pending = %d, want drained", got)
	}
}

func TestOutboxFlushRequeuesOnFailure(t *testing.T) {
	pub := &recordingPublisher{failAfter: 1}
	box := NewOutbox(pub)
	addRecords(t, box, "evt-1", "evt-2", "evt-3")

	if err := box.Flush(context.Background()); err == nil {
		t.Fatal("Flush must surface the publish failure")
	}
	pending := box.Pending()
	if len(pending) != 2 || pending[0].ID != "evt-2" || pending[1].ID != "evt-3" {
		t.Fatalf("pending = %+v, want the unpublished records requeued", pending)
	}
}
