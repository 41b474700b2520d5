package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/events"
	"github.com/hoanglamvn01/cosmetic_shop/internal/logging"
	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/payment"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

type PaymentService struct {
	Orders    *OrderService
	OrderRepo *repo.OrderRepo
	VNPay     *payment.VNPay
	MoMo      *payment.MoMo
	Producer  *events.Producer
	Now       func() time.Time
}

func NewPaymentService(orders *OrderService, orderRepo *repo.OrderRepo, vnp *payment.VNPay, momo *payment.MoMo, producer *events.Producer) *PaymentService {
	return &PaymentService{
		Orders:    orders,
		OrderRepo: orderRepo,
		VNPay:     vnp,
		MoMo:      momo,
		Producer:  producer,
		Now:       time.Now,
	}
}

// CreateVNPayOrder places the order and returns the signed redirect URL to
// the VNPay hosted payment page.
func (s *PaymentService) CreateVNPayOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest, clientIP string) (*transport.CreateOrderResponse, error) {
	req.PaymentMethod = models.PaymentMethodVNPay

	order, err := s.Orders.CreateOrder(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	info := "Thanh toan don hang " + order.OrderCode
	payURL := s.VNPay.BuildPayURL(order.TotalAmount, order.OrderCode, info, clientIP, s.Now())

	return &transport.CreateOrderResponse{
		OrderID:   order.ID,
		OrderCode: order.OrderCode,
		PayURL:    payURL,
	}, nil
}

// CreateMoMoOrder places the order and exchanges a signed create request
// with MoMo for the pay page URL.
func (s *PaymentService) CreateMoMoOrder(ctx context.Context, userID uint, req transport.CreateOrderRequest) (*transport.CreateOrderResponse, error) {
	req.PaymentMethod = models.PaymentMethodMoMo

	order, err := s.Orders.CreateOrder(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	info := "Thanh toan don hang " + order.OrderCode
	payURL, err := s.MoMo.CreatePayment(ctx, order.TotalAmount, order.OrderCode, info)
	if err != nil {
		return nil, err
	}

	return &transport.CreateOrderResponse{
		OrderID:   order.ID,
		OrderCode: order.OrderCode,
		PayURL:    payURL,
	}, nil
}

// HandleVNPayCallback verifies the callback signature and applies the
// payment result. A signature mismatch never touches payment_status; a
// duplicate delivery of a valid callback applies nothing (applied=false).
func (s *PaymentService) HandleVNPayCallback(ctx context.Context, params url.Values) (applied bool, err error) {
	if err := s.VNPay.VerifyCallback(params); err != nil {
		return false, fmt.Errorf("%w: vnpay callback", ErrBadSignature)
	}

	orderCode := params.Get("vnp_TxnRef")
	if orderCode == "" {
		return false, fmt.Errorf("%w: missing vnp_TxnRef", ErrValidation)
	}

	if !s.VNPay.IsSuccess(params) {
		if err := s.OrderRepo.MarkPaymentFailed(ctx, orderCode); err != nil {
			return false, err
		}
		s.publishStatus(ctx, orderCode, models.PaymentStatusFailed)
		return false, nil
	}

	applied, err = s.OrderRepo.MarkPaid(ctx, orderCode)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: order %s", ErrNotFound, orderCode)
	}
	if err != nil {
		return false, err
	}
	if applied {
		s.publishStatus(ctx, orderCode, models.PaymentStatusPaid)
	}
	return applied, nil
}

// HandleMoMoIPN applies a MoMo server-to-server notification under the same
// signature and pending→paid rules.
func (s *PaymentService) HandleMoMoIPN(ctx context.Context, n *payment.IPNRequest) (applied bool, err error) {
	if err := s.MoMo.VerifyIPN(n); err != nil {
		return false, fmt.Errorf("%w: momo ipn", ErrBadSignature)
	}

	if n.OrderID == "" {
		return false, fmt.Errorf("%w: missing orderId", ErrValidation)
	}

	if n.ResultCode != 0 {
		if err := s.OrderRepo.MarkPaymentFailed(ctx, n.OrderID); err != nil {
			return false, err
		}
		s.publishStatus(ctx, n.OrderID, models.PaymentStatusFailed)
		return false, nil
	}

	applied, err = s.OrderRepo.MarkPaid(ctx, n.OrderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: order %s", ErrNotFound, n.OrderID)
	}
	if err != nil {
		return false, err
	}
	if applied {
		s.publishStatus(ctx, n.OrderID, models.PaymentStatusPaid)
	}
	return applied, nil
}

func (s *PaymentService) publishStatus(ctx context.Context, orderCode, status string) {
	event := map[string]any{
		"type":       "payment_status_changed",
		"order_code": orderCode,
		"status":     status,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicPaymentEvents, orderCode, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "error", err)
	}
}
