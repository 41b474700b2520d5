package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/events"
	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type OrderService struct {
	Repo      *repo.OrderRepo
	Discounts *DiscountService
	Producer  *events.Producer
	Now       func() time.Time
}

func NewOrderService(r *repo.OrderRepo, discounts *DiscountService, producer *events.Producer) *OrderService {
	return &OrderService{Repo: r, Discounts: discounts, Producer: producer, Now: time.Now}
}

// statusTransitions is the order lifecycle: pending → confirmed → shipping →
// completed, with cancellation allowed before shipping completes.
var statusTransitions = map[string][]string{
	models.OrderStatusPending:   {models.OrderStatusConfirmed, models.OrderStatusCancelled},
	models.OrderStatusConfirmed: {models.OrderStatusShipping, models.OrderStatusCancelled},
	models.OrderStatusShipping:  {models.OrderStatusCompleted},
}

func (s *OrderService) CreateOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	if req.AddressID == 0 && req.NewAddress == nil {
		return nil, fmt.Errorf("%w: address_id or new_address required", ErrValidation)
	}
	if req.ShippingFee < 0 {
		return nil, fmt.Errorf("%w: shipping fee must be >= 0", ErrValidation)
	}

	switch req.PaymentMethod {
	case models.PaymentMethodCOD, models.PaymentMethodVNPay, models.PaymentMethodMoMo:
	default:
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		in := &req.Items[i]
		if in.ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if in.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
		if in.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}

		subtotal += in.Price * float64(in.Quantity)
		items = append(items, models.OrderItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     in.Price,
		})
	}

	var discountAmount float64
	if req.CouponCode != "" {
		applied, err := s.Discounts.Apply(ctx, req.CouponCode, subtotal)
		if err != nil {
			return nil, err
		}
		discountAmount = applied.DiscountAmount
	}

	total := subtotal + req.ShippingFee - discountAmount
	if total < 0 {
		total = 0
	}

	// COD settles on delivery, online methods stay pending until the
	// provider confirms.
	paymentStatus := models.PaymentStatusPending
	if req.PaymentMethod == models.PaymentMethodCOD {
		paymentStatus = models.PaymentStatusPaid
	}

	now := s.Now()
	order := &models.Order{
		UserID:         userID,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  paymentStatus,
		OrderStatus:    models.OrderStatusPending,
		TotalAmount:    total,
		ShippingFee:    req.ShippingFee,
		DiscountAmount: discountAmount,
		CreatedAt:      now,
	}

	var newAddr *models.Address
	if req.NewAddress != nil {
		if req.NewAddress.Line == "" || req.NewAddress.Province == "" {
			return nil, fmt.Errorf("%w: address line and province required", ErrValidation)
		}
		newAddr = &models.Address{
			Recipient: req.NewAddress.Recipient,
			Phone:     req.NewAddress.Phone,
			Line:      req.NewAddress.Line,
			Ward:      req.NewAddress.Ward,
			District:  req.NewAddress.District,
			Province:  req.NewAddress.Province,
		}
	}

	err := s.Repo.CreateOrder(ctx, repo.CreateOrderParams{
		Order:      order,
		Items:      items,
		AddressID:  req.AddressID,
		NewAddress: newAddr,
		Now:        now,
	})
	switch {
	case errors.Is(err, repo.ErrInsufficientStock):
		return nil, fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, repo.ErrAddressNotFound):
		return nil, fmt.Errorf("%w: address not found", ErrValidation)
	case err != nil:
		return nil, err
	}

	order.Items = items

	event := map[string]any{
		"type":       "order_created",
		"order_id":   order.ID,
		"order_code": order.OrderCode,
		"user_id":    userID,
		"total":      order.TotalAmount,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicOrderEvents, fmt.Sprint(order.ID), event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID uint, isAdmin bool, id uint) (*models.Order, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID && !isAdmin {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListUserOrders(ctx, userID, offset, limit)
}

func (s *OrderService) CancelOrder(ctx context.Context, userID uint, isAdmin bool, id uint) error {
	order, err := s.GetOrder(ctx, userID, isAdmin, id)
	if err != nil {
		return err
	}
	if order.OrderStatus != models.OrderStatusPending {
		return fmt.Errorf("%w: order %d is %s", ErrConflict, id, order.OrderStatus)
	}
	return s.Repo.UpdateOrderStatus(ctx, id, models.OrderStatusCancelled)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) error {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: order %d", ErrNotFound, id)
	}
	if err != nil {
		return err
	}

	for _, next := range statusTransitions[order.OrderStatus] {
		if next == status {
			return s.Repo.UpdateOrderStatus(ctx, id, status)
		}
	}
	return fmt.Errorf("%w: cannot move order from %s to %s", ErrConflict, order.OrderStatus, status)
}
