package listener

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/highlight/dto"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	msgs chan kafka.Message
	errs chan error
}

func (f *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case err := <-f.errs:
		return kafka.Message{}, err
	case m := <-f.msgs:
		return m, nil
	}
}

func (f *fakeReader) Close() error { return nil }

type recordingUseCase struct {
	mu     sync.Mutex
	orders []int64
	done   chan struct{}
}

func (r *recordingUseCase) RecordOrder(_ context.Context, evt *event.OrderCreatedEvent) error {
	r.mu.Lock()
	r.orders = append(r.orders, evt.Payload.ID)
	r.mu.Unlock()
	r.done <- struct{}{}
	return nil
}

func (r *recordingUseCase) CreateHighlight(context.Context, *dto.HighlightRequest) (*model.Highlight, error) {
	return nil, nil
}
func (r *recordingUseCase) ListHighlights(context.Context) ([]model.Highlight, error) { return nil, nil }
func (r *recordingUseCase) DeleteHighlight(context.Context, int64) error              { return nil }
func (r *recordingUseCase) BestSellers(context.Context, int) ([]model.BestSeller, error) {
	return nil, nil
}

func TestListenerRecordsOrderCreated(t *testing.T) {
	reader := &fakeReader{msgs: make(chan kafka.Message, 4), errs: make(chan error, 1)}
	uc := &recordingUseCase{done: make(chan struct{}, 4)}
	l := NewBestSellerListener(reader, uc, logger.NewNop())
	l.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		l.Start(ctx)
		close(stopped)
	}()

	other, err := json.Marshal(event.OrderCreatedEvent{EventType: "OrderCancelled", Payload: event.OrderPayload{ID: 1}})
	require.NoError(t, err)
	created, err := json.Marshal(event.NewOrderCreated(&model.Order{BaseModel: model.BaseModel{ID: 42}}))
	require.NoError(t, err)

	reader.errs <- errors.New("broker unavailable")
	reader.msgs <- kafka.Message{Value: []byte("not json")}
	reader.msgs <- kafka.Message{Value: other}
	reader.msgs <- kafka.Message{Value: created}

	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("order was not recorded")
	}

	cancel()
	<-stopped

	uc.mu.Lock()
	defer uc.mu.Unlock()
	assert.Equal(t, []int64{42}, uc.orders)
}
