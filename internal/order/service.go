package order

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"lavka-be/internal/cart"
	"lavka-be/internal/events"
	"lavka-be/internal/logger"
	"lavka-be/internal/metrics"
	"lavka-be/internal/payment"
	"lavka-be/internal/promo"

	"go.uber.org/zap"
)

// Service defines the business logic for orders and the payment
// lifecycle around them.
type Service interface {
	// CreateOrder turns the user's cart into a pending order and
	// registers a payment with the gateway.
	CreateOrder(ctx context.Context, userID uint, promoCode string) (*CreateOrderResult, error)
	// ConfirmReturn handles the customer landing back on the success
	// page after checkout.
	ConfirmReturn(ctx context.Context, userID uint, orderID string) (*Order, error)
	// PollStatus asks the gateway for the payment state and settles
	// the order if the payment reached a final state. paymentID may
	// be empty, in which case the stored payment record is used.
	PollStatus(ctx context.Context, userID uint, paymentID, orderID string) (*StatusResult, error)
	// ProcessWebhook settles an order from a gateway notification.
	ProcessWebhook(ctx context.Context, event, status, orderID, paymentID string) error
	ListOrders(ctx context.Context, userID uint) ([]Order, error)
	GetOrder(ctx context.Context, userID uint, orderID string, isAdmin bool) (*Order, error)
}

type service struct {
	repo        Repository
	cartSvc     cart.Service
	promoSvc    promo.Service
	paymentRepo payment.Repository
	gateway     payment.Gateway
	publisher   events.Publisher
	baseURL     string
}

type ServiceDeps struct {
	Repo        Repository
	CartService cart.Service
	PromoSvc    promo.Service
	PaymentRepo payment.Repository
	Gateway     payment.Gateway
	Publisher   events.Publisher
	BaseURL     string
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:        deps.Repo,
		cartSvc:     deps.CartService,
		promoSvc:    deps.PromoSvc,
		paymentRepo: deps.PaymentRepo,
		gateway:     deps.Gateway,
		publisher:   deps.Publisher,
		baseURL:     deps.BaseURL,
	}
}

func (s *service) CreateOrder(ctx context.Context, userID uint, promoCode string) (*CreateOrderResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Uint("user_id", userID),
	)

	snap, err := s.cartSvc.Snapshot(ctx, userID)
	if err != nil {
		log.Error("failed to read cart", zap.Error(err))
		return nil, err
	}
	if len(snap.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var (
		discount int
		applied  string
	)
	if promoCode != "" {
		p, err := s.promoSvc.Validate(ctx, promoCode)
		if err != nil {
			return nil, err
		}
		discount = p.Discount
		applied = p.Code
	}

	total := snap.TotalPrice
	if discount > 0 {
		total = total - total*float64(discount)/100
	}

	items := make([]OrderItem, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	o, err := s.repo.CreateOrder(ctx, userID, total, items)
	if err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	p, err := s.gateway.CreatePayment(ctx, payment.CreatePaymentParams{
		Amount:      total,
		Currency:    "RUB",
		ReturnURL:   fmt.Sprintf("%s/payment/success?orderId=%s", s.baseURL, o.ID),
		Description: fmt.Sprintf("Заказ #%s", o.ID),
		Metadata: payment.Metadata{
			OrderID:   o.ID,
			UserID:    strconv.FormatUint(uint64(userID), 10),
			PromoCode: applied,
		},
	})
	if err != nil {
		// The order stays pending; the customer can retry checkout.
		log.Error("gateway rejected the payment", zap.String("order_id", o.ID), zap.Error(err))
		return nil, err
	}

	if _, err := s.paymentRepo.Save(ctx, o.ID, p.ID, p.ConfirmationURL, total, p.Status); err != nil {
		log.Error("failed to persist payment", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, events.OrderEvent{
		EventType:  events.EventOrderCreated,
		OrderID:    o.ID,
		UserID:     userID,
		Total:      total,
		Status:     string(StatusPending),
		OccurredAt: time.Now(),
	})
	metrics.RecordOrderCreated()

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Float64("total", total),
		zap.Int("discount", discount),
	)

	return &CreateOrderResult{
		OrderID:         o.ID,
		PaymentID:       p.ID,
		ConfirmationURL: p.ConfirmationURL,
		Total:           total,
		Discount:        discount,
		AppliedPromo:    applied,
	}, nil
}

// ConfirmReturn trusts the redirect: landing on the success page
// settles a pending order as paid without asking the gateway.
// Webhook or poll would reach the same state anyway.
func (s *service) ConfirmReturn(ctx context.Context, userID uint, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	if o.Status == StatusPending {
		changed, err := s.repo.MarkPaid(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if changed {
			s.settlePaid(ctx, o, userID)
			o.Status = StatusPaid
		} else if fresh, err := s.repo.GetByID(ctx, orderID); err == nil && fresh != nil {
			// Somebody else settled the order between the read and
			// the update.
			o.Status = fresh.Status
		}
	}
	return o, nil
}

func (s *service) PollStatus(ctx context.Context, userID uint, paymentID, orderID string) (*StatusResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PollStatus"),
		zap.String("order_id", orderID),
	)

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	if paymentID == "" {
		rec, err := s.paymentRepo.GetByOrderID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, ErrPaymentNotFound
		}
		paymentID = rec.PaymentID
	}

	p, err := s.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		log.Error("gateway status lookup failed", zap.Error(err))
		return nil, err
	}

	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, p.Status); err != nil {
		log.Warn("failed to record payment status", zap.Error(err))
	}

	switch p.Status {
	case payment.StatusSucceeded:
		changed, err := s.repo.MarkPaid(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if changed {
			s.settlePaid(ctx, o, userID)
			o.Status = StatusPaid
		} else if fresh, err := s.repo.GetByID(ctx, orderID); err == nil && fresh != nil {
			o.Status = fresh.Status
		}
	case payment.StatusCanceled:
		changed, err := s.repo.MarkCanceled(ctx, orderID)
		if err != nil {
			return nil, err
		}
		if changed {
			s.settleCanceled(ctx, o)
			o.Status = StatusCanceled
		} else if fresh, err := s.repo.GetByID(ctx, orderID); err == nil && fresh != nil {
			// The guard may have lost to a paid transition; report
			// what the database holds now.
			o.Status = fresh.Status
		}
	}

	return &StatusResult{
		OrderID:       o.ID,
		OrderStatus:   o.Status,
		PaymentStatus: p.Status,
		Paid:          o.Status == StatusPaid,
	}, nil
}

func (s *service) ProcessWebhook(ctx context.Context, event, status, orderID, paymentID string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ProcessWebhook"),
		zap.String("event", event),
		zap.String("order_id", orderID),
	)
	metrics.RecordWebhookReceived(event)

	if paymentID != "" {
		if err := s.paymentRepo.UpdateStatus(ctx, paymentID, status); err != nil {
			log.Warn("failed to record payment status", zap.Error(err))
		}
	}

	switch {
	case event == payment.EventPaymentSucceeded && status == payment.StatusSucceeded:
		changed, err := s.repo.MarkPaid(ctx, orderID)
		if err != nil {
			return err
		}
		if !changed {
			log.Info("order already settled")
			return nil
		}
		owner, err := s.repo.GetOwner(ctx, orderID)
		if err != nil {
			return err
		}
		s.settlePaid(ctx, &Order{ID: orderID, UserID: owner}, owner)

	case event == payment.EventPaymentCanceled && status == payment.StatusCanceled:
		changed, err := s.repo.MarkCanceled(ctx, orderID)
		if err != nil {
			return err
		}
		if changed {
			s.settleCanceled(ctx, &Order{ID: orderID})
		}

	default:
		log.Info("ignoring webhook event", zap.String("status", status))
	}
	return nil
}

func (s *service) ListOrders(ctx context.Context, userID uint) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetOrder(ctx context.Context, userID uint, orderID string, isAdmin bool) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	// A foreign order looks the same as a missing one.
	if o == nil || (!isAdmin && o.UserID != userID) {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// settlePaid runs the side effects of a won paid transition: the
// owner's cart is emptied and the event goes out. Failures here are
// logged but do not undo the transition.
func (s *service) settlePaid(ctx context.Context, o *Order, owner uint) {
	log := logger.FromCtx(ctx)

	if err := s.cartSvc.Clear(ctx, owner); err != nil {
		log.Warn("failed to clear cart after payment",
			zap.String("order_id", o.ID), zap.Error(err))
	}

	s.publish(ctx, events.OrderEvent{
		EventType:  events.EventOrderPaid,
		OrderID:    o.ID,
		UserID:     owner,
		Total:      o.Total,
		Status:     string(StatusPaid),
		OccurredAt: time.Now(),
	})
	metrics.RecordPaymentProcessed(payment.StatusSucceeded)
}

func (s *service) settleCanceled(ctx context.Context, o *Order) {
	s.publish(ctx, events.OrderEvent{
		EventType:  events.EventOrderCanceled,
		OrderID:    o.ID,
		UserID:     o.UserID,
		Total:      o.Total,
		Status:     string(StatusCanceled),
		OccurredAt: time.Now(),
	})
	metrics.RecordPaymentProcessed(payment.StatusCanceled)
}

func (s *service) publish(ctx context.Context, event events.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.FromCtx(ctx).Warn("failed to publish order event",
			zap.String("event", event.EventType),
			zap.String("order_id", event.OrderID),
			zap.Error(err),
		)
	}
}
