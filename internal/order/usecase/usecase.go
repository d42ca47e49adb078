package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-menu-service/internal/apperror"
	"github.com/fekuna/omnipos-menu-service/internal/event"
	"github.com/fekuna/omnipos-menu-service/internal/logger"
	"github.com/fekuna/omnipos-menu-service/internal/metrics"
	"github.com/fekuna/omnipos-menu-service/internal/model"
	"github.com/fekuna/omnipos-menu-service/internal/order"
	"github.com/fekuna/omnipos-menu-service/internal/order/dto"
	"github.com/fekuna/omnipos-menu-service/internal/order/pricing"
	"github.com/fekuna/omnipos-menu-service/internal/order/whatsapp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	tracerName     = "github.com/fekuna/omnipos-menu-service/internal/order"
	publishTimeout = 5 * time.Second
)

type Options struct {
	RequireAvailable bool
}

type orderUseCase struct {
	repo      order.Repository
	products  order.ProductReader
	formatter *whatsapp.Formatter
	publisher event.Publisher
	metrics   *metrics.ServerMetrics
	tracer    trace.Tracer
	opts      Options
	logger    logger.ZapLogger
}

func NewOrderUseCase(
	repo order.Repository,
	products order.ProductReader,
	formatter *whatsapp.Formatter,
	publisher event.Publisher,
	m *metrics.ServerMetrics,
	opts Options,
	log logger.ZapLogger,
) order.UseCase {
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}
	return &orderUseCase{
		repo:      repo,
		products:  products,
		formatter: formatter,
		publisher: publisher,
		metrics:   m,
		tracer:    otel.Tracer(tracerName),
		opts:      opts,
		logger:    log,
	}
}

// PlaceOrder validates and prices the cart, persists the order atomically and
// only then renders the deep link. Nothing is written when any step before
// persistence fails, and nothing is rendered or published when persistence fails.
func (uc *orderUseCase) PlaceOrder(ctx context.Context, input *dto.PlaceOrderInput) (placed *dto.PlacedOrder, err error) {
	defer func() {
		outcome := "created"
		if err != nil {
			outcome = apperror.KindOf(err).String()
		}
		uc.metrics.ObserveOrder(outcome)
	}()

	name := strings.TrimSpace(input.Customer.Name)
	if name == "" {
		return nil, apperror.Validation("customer name is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.Validation("cart is empty")
	}
	for _, it := range input.Items {
		if it.Quantity < 1 {
			return nil, apperror.Validationf("quantity for product %d must be at least 1", it.ProductID)
		}
	}

	quote, err := uc.price(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	o := &model.Order{
		CustomerName:    name,
		CustomerPhone:   optional(input.Customer.Phone),
		CustomerAddress: optional(input.Customer.Address),
		Observations:    optional(input.Notes),
		Total:           quote.Total,
		Status:          model.OrderStatuses[0],
		Items:           make([]model.OrderItem, len(quote.Lines)),
	}
	for i, l := range quote.Lines {
		productID := l.ProductID
		o.Items[i] = model.OrderItem{
			ProductID:   &productID,
			ProductName: l.Name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		}
	}

	if err := uc.persist(ctx, o); err != nil {
		return nil, err
	}

	_, span := uc.tracer.Start(ctx, "order.format")
	msg := uc.formatter.Message(o)
	link := uc.formatter.Link(msg)
	span.End()

	uc.publish(ctx, o)

	uc.logger.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.Int("items", len(o.Items)),
		zap.String("total", o.Total.StringFixed(2)),
	)

	return &dto.PlacedOrder{Order: o, Message: msg, DeepLink: link}, nil
}

func (uc *orderUseCase) price(ctx context.Context, items []pricing.CartItem) (*pricing.Quote, error) {
	ctx, span := uc.tracer.Start(ctx, "order.price", trace.WithAttributes(attribute.Int("order.cart_entries", len(items))))
	defer span.End()

	// one batch lookup for every distinct id
	products, err := uc.products.FindByIDs(ctx, pricing.DistinctIDs(items))
	if err != nil {
		recordError(span, err)
		return nil, apperror.Persistence("lookup products", err)
	}

	quote, err := pricing.Price(items, pricing.Index(products), pricing.Options{RequireAvailable: uc.opts.RequireAvailable})
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return quote, nil
}

func (uc *orderUseCase) persist(ctx context.Context, o *model.Order) error {
	ctx, span := uc.tracer.Start(ctx, "order.persist")
	defer span.End()

	if err := uc.repo.Create(ctx, o); err != nil {
		recordError(span, err)
		uc.logger.Error("failed to persist order", zap.String("customer", o.CustomerName), zap.Error(err))
		return apperror.Persistence("create order", err)
	}
	span.SetAttributes(attribute.Int64("order.id", o.ID))
	return nil
}

// publish is best effort: the order is already committed, so a broker failure
// is logged and the request still succeeds.
func (uc *orderUseCase) publish(ctx context.Context, o *model.Order) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := uc.publisher.PublishOrderCreated(pubCtx, event.NewOrderCreated(o)); err != nil {
		uc.logger.Warn("failed to publish order event", zap.Int64("order_id", o.ID), zap.Error(err))
	}
}

func (uc *orderUseCase) GetOrder(ctx context.Context, id int64) (*model.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.Persistence("find order", err)
	}
	if o == nil {
		return nil, apperror.NotFound("order", id)
	}
	return o, nil
}

func (uc *orderUseCase) ListOrders(ctx context.Context, filters *dto.OrderFilters) ([]model.Order, error) {
	if filters == nil {
		filters = &dto.OrderFilters{}
	}
	if filters.Status != "" {
		if _, ok := model.ParseOrderStatus(filters.Status); !ok {
			return nil, invalidStatus(filters.Status)
		}
	}

	orders, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, apperror.Persistence("list orders", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to any recognized status. Transitions carry no
// guards beyond the value being one of the workflow states.
func (uc *orderUseCase) UpdateStatus(ctx context.Context, id int64, status string) (*model.Order, error) {
	st, ok := model.ParseOrderStatus(strings.TrimSpace(status))
	if !ok {
		return nil, invalidStatus(status)
	}

	updated, err := uc.repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, apperror.Persistence("update order status", err)
	}
	if !updated {
		return nil, apperror.NotFound("order", id)
	}

	uc.logger.Info("order status updated", zap.Int64("order_id", id), zap.String("status", string(st)))
	return uc.GetOrder(ctx, id)
}

func invalidStatus(status string) error {
	names := make([]string, len(model.OrderStatuses))
	for i, s := range model.OrderStatuses {
		names[i] = string(s)
	}
	return apperror.Validationf("invalid status %q, expected one of: %s", status, strings.Join(names, ", "))
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
