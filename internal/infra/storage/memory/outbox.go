package memory

import (
	"context"
	"sync"

	"staybook/internal/app/outbox"
)

// Publisher receives flushed outbox records. The kafka producer satisfies it
// in broker mode; tests plug in a recording stub.
type Publisher interface {
	Publish(ctx context.Context, record outbox.EventRecord) error
}

// Outbox buffers event records in memory and hands them to the publisher on
// Flush. Records that fail to publish stay queued for the next flush.
type Outbox struct {
	mu        sync.Mutex
	pending   []outbox.EventRecord
	publisher Publisher
}

func NewOutbox(publisher Publisher) *Outbox {
	return &Outbox{publisher: publisher}
}

func (o *Outbox) Add(ctx context.Context, record outbox.EventRecord) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = append(o.pending, record)
	return nil
}

func (o *Outbox) Flush(ctx context.Context) error {
	// without a publisher the records stay buffered rather than being
	// silently dropped
	if o.publisher == nil {
		return nil
	}

	o.mu.Lock()
	queued := o.pending
	o.pending = nil
	o.mu.Unlock()
	for i, record := range queued {
		if err := o.publisher.Publish(ctx, record); err != nil {
			o.mu.Lock()
			o.pending = append(queued[i:], o.pending...)
			o.mu.Unlock()
			return err
		}
	}
	return nil
}

// Pending returns a copy of the queued records. Test helper.
func (o *Outbox) Pending() []outbox.EventRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]outbox.EventRecord, len(o.pending))
	copy(out, o.pending)
	return out
}

var _ outbox.Outbox = (*Outbox)(nil)
