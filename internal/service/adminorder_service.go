package service

import (
	"context"
	"fmt"
	"time"

	"bloomcart/internal/calendar"
	"bloomcart/internal/format"
	"bloomcart/internal/model"
	"bloomcart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// pendingSessionTTL is how long a PENDING order may sit on an unpaid payment
// session before the lazy sweep fails it.
const pendingSessionTTL = 24 * time.Hour

// adminOrderService implements AdminOrderService.
type adminOrderService struct {
	orderRepo repository.OrderRepository
	timeZone  string
	logger    zerolog.Logger
}

// NewAdminOrderService creates a new admin order service. timeZone is the
// store timezone used for day bucketing.
func NewAdminOrderService(orderRepo repository.OrderRepository, timeZone string, logger zerolog.Logger) AdminOrderService {
	return &adminOrderService{
		orderRepo: orderRepo,
		timeZone:  timeZone,
		logger:    logger.With().Str("service", "admin_order").Logger(),
	}
}

// sweepStalePending fails abandoned checkout sessions. Failures are logged
// and swallowed so a broken sweep cannot block the listing itself.
func (s *adminOrderService) sweepStalePending(ctx context.Context) {
	expired, err := s.orderRepo.ExpirePending(ctx, time.Now().Add(-pendingSessionTTL))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to expire stale pending orders")
		return
	}
	if expired > 0 {
		s.logger.Info().Int64("expired", expired).Msg("stale pending orders failed")
	}
}

// ListByDay retrieves the orders created on the named calendar day in the
// store timezone.
func (s *adminOrderService) ListByDay(ctx context.Context, dayKey string) (*DayOrders, error) {
	rng, ok := calendar.DayRange(dayKey, s.timeZone)
	if !ok {
		s.logger.Warn().Str("day_key", dayKey).Msg("malformed day key")
		return nil, model.ErrInvalidDayKey
	}

	s.sweepStalePending(ctx)

	orders, err := s.orderRepo.ListByCreatedRange(ctx, rng.Start, rng.End)
	if err != nil {
		s.logger.Error().Err(err).Str("day_key", dayKey).Msg("failed to list orders by day")
		return nil, fmt.Errorf("failed to list orders by day: %w", err)
	}

	ids := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}

	items, err := s.orderRepo.ListItems(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Str("day_key", dayKey).Msg("failed to load order items")
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	byOrder := make(map[uuid.UUID][]model.OrderItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}

	responses := make([]model.OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = model.OrderResponse{
			Order:         o,
			Items:         byOrder[o.ID],
			StatusDisplay: format.OrderStatus(o.Status),
		}
	}

	s.logger.Debug().Str("day_key", dayKey).Int("count", len(orders)).Msg("orders listed by day")

	return &DayOrders{
		DayKey:  dayKey,
		PrevKey: calendar.AddDays(dayKey, -1),
		NextKey: calendar.AddDays(dayKey, 1),
		Orders:  responses,
	}, nil
}

// Week computes the pager state for the week starting at weekStartKey. An
// empty or malformed key falls back to the current trailing week.
func (s *adminOrderService) Week(weekStartKey string) WeekNavigation {
	if _, ok := calendar.ParseDayKey(weekStartKey); !ok {
		weekStartKey = calendar.CurrentWeekStartKey(time.Now(), s.timeZone)
	}

	dayKeys := make([]string, calendar.WeekDays)
	for i := range dayKeys {
		dayKeys[i] = calendar.AddDays(weekStartKey, i)
	}

	return WeekNavigation{
		WeekStartKey: weekStartKey,
		DayKeys:      dayKeys,
		PrevWeekKey:  calendar.AddWeeks(weekStartKey, -1),
		NextWeekKey:  calendar.AddWeeks(weekStartKey, 1),
	}
}

// MarkRead marks an order as seen in the admin panel.
func (s *adminOrderService) MarkRead(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.MarkRead(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to mark order read")
		return err
	}

	s.logger.Debug().Str("order_id", id.String()).Msg("order marked read")
	return nil
}

// UnreadCount counts orders not yet seen in the admin panel.
func (s *adminOrderService) UnreadCount(ctx context.Context) (int, error) {
	count, err := s.orderRepo.CountUnread(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to count unread orders")
		return 0, fmt.Errorf("failed to count unread orders: %w", err)
	}
	return count, nil
}

// UpdateStatus sets an order's payment status.
func (s *adminOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	switch status {
	case model.OrderPending, model.OrderPaid, model.OrderFailed, model.OrderCanceled:
	default:
		return fmt.Errorf("unknown order status %q", status)
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return err
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("status", string(status)).
		Msg("order status updated")
	return nil
}
