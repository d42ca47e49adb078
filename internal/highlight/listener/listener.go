package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/highlight"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafka.Reader the listener needs.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// BestSellerListener feeds the best-seller ranking from OrderCreated events.
type BestSellerListener struct {
	reader  MessageReader
	uc      highlight.UseCase
	logger  logger.ZapLogger
	backoff time.Duration
}

func NewBestSellerListener(reader MessageReader, uc highlight.UseCase, log logger.ZapLogger) *BestSellerListener {
	return &BestSellerListener{
		reader:  reader,
		uc:      uc,
		logger:  log,
		backoff: time.Second,
	}
}

// Start blocks until ctx is cancelled.
func (l *BestSellerListener) Start(ctx context.Context) {
	l.logger.Info("starting best-seller kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping best-seller kafka listener")
			return
		default:
			msg, err := l.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("failed to read kafka message", zap.Error(err))
				select {
				case <-ctx.Done():
					return
				case <-time.After(l.backoff):
				}
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

func (l *BestSellerListener) Close() error {
	return l.reader.Close()
}

func (l *BestSellerListener) processMessage(ctx context.Context, value []byte) {
	var evt event.OrderCreatedEvent
	if err := json.Unmarshal(value, &evt); err != nil {
		l.logger.Error("failed to unmarshal event", zap.Error(err))
		return
	}

	if evt.EventType != event.TypeOrderCreated {
		return
	}

	if err := l.uc.RecordOrder(ctx, &evt); err != nil {
		l.logger.Error("failed to record order in best sellers",
			zap.Int64("order_id", evt.Payload.ID),
			zap.String("event_id", evt.EventID),
			zap.Error(err),
		)
		return
	}
	l.logger.Debug("order recorded in best sellers", zap.Int64("order_id", evt.Payload.ID))
}
