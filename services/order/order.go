package order

import (
	"context"
	"fmt"
	"time"

	orderRepo "spedocity/database/repository/order"
	"spedocity/models"
	"spedocity/services/notification"
	"spedocity/services/wallet"
	"spedocity/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusTransitions is the allowed delivery lifecycle. Delivered and
// cancelled are terminal.
var statusTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderCreated:        {models.OrderDriverAssigned, models.OrderCancelled},
	models.OrderDriverAssigned: {models.OrderPickedUp, models.OrderCancelled},
	models.OrderPickedUp:       {models.OrderInTransit},
	models.OrderInTransit:      {models.OrderDelivered},
}

// ReminderScheduler enqueues a reminder to fire at the given time. Implemented
// by the asynq task client; nil disables reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error
}

// OrderService manages durable orders created from completed booking drafts.
type OrderService interface {
	CreateFromDraft(ctx context.Context, userID string, draft models.BookingDraft) (*models.Order, error)
	Get(ctx context.Context, userID, orderID string) (*models.Order, error)
	List(ctx context.Context, userID string) ([]models.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (*models.Order, error)
}

// DefaultOrderService implements OrderService.
type DefaultOrderService struct {
	Repo      orderRepo.OrderRepository
	Wallet    wallet.WalletService
	Notify    notification.NotificationService
	Reminders ReminderScheduler
}

// CreateFromDraft persists a confirmed draft as an order. Wallet payments are
// charged up front; a scheduled "later" booking also enqueues a reminder for
// its slot. Notification and reminder failures are logged, not fatal: the
// order stands once it is written.
func (s *DefaultOrderService) CreateFromDraft(ctx context.Context, userID string, draft models.BookingDraft) (*models.Order, error) {
	if draft.Pickup == "" || draft.Dropoff == "" || draft.Service == "" ||
		draft.Fare == nil || draft.PaymentMethod == "" || draft.BookingID == "" {
		return nil, ErrIncompleteDraft
	}

	order := &models.Order{
		ID:            uuid.New().String(),
		BookingRef:    draft.BookingID,
		UserID:        userID,
		Pickup:        draft.Pickup,
		Dropoff:       draft.Dropoff,
		Service:       draft.Service,
		ItemDetails:   draft.ItemDetails,
		HelperCount:   draft.HelperCount,
		Schedule:      draft.Schedule,
		TotalAmount:   draft.Fare.TotalPrice,
		Fare:          draft.Fare,
		PaymentMethod: draft.PaymentMethod,
		Status:        models.OrderCreated,
	}

	if draft.PaymentMethod == "wallet" {
		if err := s.Wallet.Charge(ctx, userID, order.TotalAmount, order.BookingRef); err != nil {
			return nil, fmt.Errorf("wallet payment failed: %w", err)
		}
	}

	if err := s.Repo.Create(order); err != nil {
		if draft.PaymentMethod == "wallet" {
			if refundErr := s.Wallet.Refund(ctx, userID, order.TotalAmount, order.BookingRef); refundErr != nil {
				utils.GetLogger().Error("Failed to refund wallet after order create failure",
					zap.String("bookingRef", order.BookingRef), zap.Error(refundErr))
			}
		}
		return nil, err
	}

	s.notify(ctx, userID, "Booking confirmed",
		fmt.Sprintf("Your booking %s is confirmed.", order.BookingRef),
		map[string]string{"orderId": order.ID})

	if order.Schedule != nil && order.Schedule.Kind == models.ScheduleLater && s.Reminders != nil {
		if fireAt, err := scheduleStart(order.Schedule); err != nil {
			utils.GetLogger().Warn("Skipping reminder for unparseable schedule",
				zap.String("orderId", order.ID), zap.Error(err))
		} else if err := s.Reminders.ScheduleReminder(ctx, models.ReminderPayload{
			UserID:     userID,
			OrderID:    order.ID,
			BookingRef: order.BookingRef,
			TimeSlot:   order.Schedule.TimeSlot,
		}, fireAt); err != nil {
			utils.GetLogger().Error("Failed to schedule booking reminder",
				zap.String("orderId", order.ID), zap.Error(err))
		}
	}

	return order, nil
}

// Get retrieves a single order. Ownership is enforced: another user's order
// reports not found.
func (s *DefaultOrderService) Get(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.Repo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List retrieves the user's orders, newest first.
func (s *DefaultOrderService) List(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Repo.ListByUser(userID)
}

// UpdateStatus moves an order along its lifecycle, rejecting transitions not
// in the table. A status change lands in the user's notification feed.
func (s *DefaultOrderService) UpdateStatus(ctx context.Context, userID, orderID string, status models.OrderStatus) (*models.Order, error) {
	order, err := s.Get(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	if !transitionAllowed(order.Status, status) {
		return nil, &StatusError{From: order.Status, To: status}
	}

	if err := s.Repo.UpdateStatus(orderID, status); err != nil {
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()

	s.notify(ctx, userID, "Order update",
		fmt.Sprintf("Order %s is now %s.", order.BookingRef, status),
		map[string]string{"orderId": order.ID, "status": string(status)})

	return order, nil
}

// Cancel cancels an order while it is still cancellable. Wallet payments are
// refunded in full.
func (s *DefaultOrderService) Cancel(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.UpdateStatus(ctx, userID, orderID, models.OrderCancelled)
	if err != nil {
		return nil, err
	}

	if order.PaymentMethod == "wallet" {
		if err := s.Wallet.Refund(ctx, userID, order.TotalAmount, order.BookingRef); err != nil {
			utils.GetLogger().Error("Failed to refund cancelled order",
				zap.String("orderId", order.ID), zap.Error(err))
		}
	}
	return order, nil
}

func (s *DefaultOrderService) notify(ctx context.Context, userID, title, body string, data map[string]string) {
	if s.Notify == nil {
		return
	}
	if err := s.Notify.Push(ctx, userID, title, body, data); err != nil {
		utils.GetLogger().Error("Failed to push notification", zap.Error(err))
	}
}

func transitionAllowed(from, to models.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// scheduleStart resolves the wall-clock start of a "later" schedule. Time
// slots look like "09:00-11:00"; the reminder fires at the slot start.
func scheduleStart(sch *models.Schedule) (time.Time, error) {
	slotStart := sch.TimeSlot
	for i := 0; i < len(slotStart); i++ {
		if slotStart[i] == '-' {
			slotStart = slotStart[:i]
			break
		}
	}
	return time.ParseInLocation("2006-01-02 15:04", sch.Date+" "+slotStart, time.Local)
}
