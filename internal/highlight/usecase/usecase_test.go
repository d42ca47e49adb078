package usecase

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/database/dbtest"
	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/highlight"
	"github.com/fekuna/omnipos-menu-service/internal/highlight/dto"
	"github.com/fekuna/omnipos-menu-service/internal/highlight/repository"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	productrepo "github.com/fekuna/omnipos-menu-service/internal/product/repository"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRanking struct {
	mu     sync.Mutex
	scores map[string]float64
}

func newMemoryRanking() *memoryRanking {
	return &memoryRanking{scores: map[string]float64{}}
}

func (m *memoryRanking) IncrementScore(_ context.Context, _, member string, by float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[member] += by
	return nil
}

func (m *memoryRanking) TopScores(_ context.Context, _ string, n int64) ([]redis.Z, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]redis.Z, 0, len(m.scores))
	for member, score := range m.scores {
		out = append(out, redis.Z{Member: member, Score: score})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func newUseCase(t *testing.T, ranking highlight.Ranking) (highlight.UseCase, *sqlx.DB) {
	db := dbtest.New(t)
	uc := NewHighlightUseCase(repository.NewPGRepository(db), productrepo.NewPGRepository(db), ranking, logger.NewNop())
	return uc, db
}

func TestListHighlightsSkipsUnavailable(t *testing.T) {
	uc, db := newUseCase(t, nil)
	ctx := context.Background()

	pastel := dbtest.InsertProduct(t, db, "Pastel", "7.00", nil, true)
	coxinha := dbtest.InsertProduct(t, db, "Coxinha", "6.50", nil, false)
	suco := dbtest.InsertProduct(t, db, "Suco", "8.00", nil, true)

	_, err := uc.CreateHighlight(ctx, &dto.HighlightRequest{ProductID: suco, Reason: "Refrescante", Order: 2})
	require.NoError(t, err)
	_, err = uc.CreateHighlight(ctx, &dto.HighlightRequest{ProductID: coxinha, Reason: "Mais pedido", Order: 0})
	require.NoError(t, err)
	_, err = uc.CreateHighlight(ctx, &dto.HighlightRequest{ProductID: pastel, Reason: " Novidade ", Order: 1})
	require.NoError(t, err)

	list, err := uc.ListHighlights(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, pastel, list[0].ProductID)
	assert.Equal(t, "Novidade", list[0].Reason)
	require.NotNil(t, list[0].Product)
	assert.Equal(t, "Pastel", list[0].Product.Name)
	assert.Equal(t, suco, list[1].ProductID)
}

func TestCreateHighlightUnknownProduct(t *testing.T) {
	uc, _ := newUseCase(t, nil)

	_, err := uc.CreateHighlight(context.Background(), &dto.HighlightRequest{ProductID: 999, Reason: "Top"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "product 999")
}

func TestDeleteHighlight(t *testing.T) {
	uc, db := newUseCase(t, nil)
	ctx := context.Background()
	p := dbtest.InsertProduct(t, db, "Pastel", "7.00", nil, true)
	h, err := uc.CreateHighlight(ctx, &dto.HighlightRequest{ProductID: p, Reason: "Top"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteHighlight(ctx, h.ID))
	assert.True(t, apperror.Is(uc.DeleteHighlight(ctx, h.ID), apperror.KindNotFound))
}

func TestBestSellersFromRecordedOrders(t *testing.T) {
	ranking := newMemoryRanking()
	uc, db := newUseCase(t, ranking)
	ctx := context.Background()

	pastel := dbtest.InsertProduct(t, db, "Pastel", "7.00", nil, true)
	suco := dbtest.InsertProduct(t, db, "Suco", "8.00", nil, true)
	hidden := dbtest.InsertProduct(t, db, "Coxinha", "6.50", nil, false)

	record := func(items ...event.OrderItemPayload) {
		require.NoError(t, uc.RecordOrder(ctx, &event.OrderCreatedEvent{
			EventType: event.TypeOrderCreated,
			Payload:   event.OrderPayload{ID: 1, Items: items},
		}))
	}
	record(event.OrderItemPayload{ProductID: pastel, Quantity: 2}, event.OrderItemPayload{ProductID: suco, Quantity: 1})
	record(event.OrderItemPayload{ProductID: suco, Quantity: 4}, event.OrderItemPayload{ProductID: hidden, Quantity: 9})
	record(event.OrderItemPayload{ProductID: 0, Quantity: 3})

	assert.Equal(t, float64(9), ranking.scores[strconv.FormatInt(hidden, 10)])

	best, err := uc.BestSellers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, best, 2)
	assert.Equal(t, suco, best[0].ProductID)
	assert.Equal(t, int64(5), best[0].Sold)
	assert.Equal(t, "Suco", best[0].Product.Name)
	assert.Equal(t, pastel, best[1].ProductID)
}

func TestBestSellersWithoutRedis(t *testing.T) {
	uc, _ := newUseCase(t, nil)

	best, err := uc.BestSellers(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, best)
}
