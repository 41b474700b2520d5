package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
	"github.com/hoanglamvn01/cosmetic_shop/internal/payment"
	"github.com/hoanglamvn01/cosmetic_shop/internal/repo"
	"github.com/hoanglamvn01/cosmetic_shop/internal/transport"
)

func newPaymentEnv(t *testing.T) (*PaymentService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	orderRepo := &repo.OrderRepo{DB: db}
	discounts := NewDiscountService(&repo.DiscountRepo{DB: db})
	orders := NewOrderService(orderRepo, discounts, nil)
	orders.Now = func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }

	vnp := &payment.VNPay{
		TmnCode:    "TESTCODE",
		HashSecret: "test-hash-secret",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/payments/vnpay_return",
	}
	momo := payment.NewMoMo("PARTNER", "access-key", "secret-key", "", "", "")

	return NewPaymentService(orders, orderRepo, vnp, momo, nil), db
}

func placePendingVNPayOrder(t *testing.T, svc *PaymentService, db *gorm.DB) *transport.CreateOrderResponse {
	t.Helper()

	product := models.Product{Name: "serum", Price: 200000, StockQuantity: 10}
	require.NoError(t, db.Create(&product).Error)
	addr := models.Address{UserID: 1, Recipient: "A", Phone: "0900", Line: "12 Nguyen Trai", Province: "Ho Chi Minh"}
	require.NoError(t, db.Create(&addr).Error)

	resp, err := svc.CreateVNPayOrder(context.Background(), 1, transport.CreateOrderRequest{
		Items:     []transport.OrderItemInput{{ProductID: product.ID, Quantity: 1, Price: 200000}},
		AddressID: addr.ID,
	}, "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.PayURL)
	return resp
}

// signedVNPayCallback signs callback params the way the provider would.
func signedVNPayCallback(t *testing.T, svc *PaymentService, orderCode, responseCode string) url.Values {
	t.Helper()

	params := url.Values{}
	params.Set("vnp_TxnRef", orderCode)
	params.Set("vnp_ResponseCode", responseCode)
	params.Set("vnp_Amount", "20000000")
	params.Set("vnp_SecureHash", vnpaySign(svc.VNPay.HashSecret, map[string]string{
		"vnp_TxnRef":       orderCode,
		"vnp_ResponseCode": responseCode,
		"vnp_Amount":       "20000000",
	}))
	return params
}

func vnpaySign(secret string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}

// momoSignedIPN builds a notification signed with the merchant secret.
func momoSignedIPN(m *payment.MoMo, orderCode string, resultCode int) *payment.IPNRequest {
	n := &payment.IPNRequest{
		PartnerCode:  m.PartnerCode,
		OrderID:      orderCode,
		RequestID:    "req-1",
		Amount:       200000,
		OrderInfo:    "info",
		OrderType:    "momo_wallet",
		TransID:      123456789,
		ResultCode:   resultCode,
		Message:      "Successful.",
		PayType:      "qr",
		ResponseTime: 1741944413000,
	}
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.AccessKey, n.Amount, n.ExtraData, n.Message, n.OrderID, n.OrderInfo,
		n.OrderType, n.PartnerCode, n.PayType, n.RequestID, n.ResponseTime,
		n.ResultCode, n.TransID,
	)
	n.Signature = m.Sign(raw)
	return n
}

func TestHandleVNPayCallback_SuccessMarksPaidOnce(t *testing.T) {
	t.Parallel()

	svc, db := newPaymentEnv(t)
	resp := placePendingVNPayOrder(t, svc, db)
	ctx := context.Background()

	params := signedVNPayCallback(t, svc, resp.OrderCode, "00")

	applied, err := svc.HandleVNPayCallback(ctx, params)
	require.NoError(t, err)
	assert.True(t, applied)

	// duplicate delivery applies nothing
	applied, err = svc.HandleVNPayCallback(ctx, params)
	require.NoError(t, err)
	assert.False(t, applied)

	var order models.Order
	require.NoError(t, db.Where("order_code = ?", resp.OrderCode).First(&order).Error)
	assert.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
}

func TestHandleVNPayCallback_BadSignatureNeverMarksPaid(t *testing.T) {
	t.Parallel()

	svc, db := newPaymentEnv(t)
	resp := placePendingVNPayOrder(t, svc, db)

	params := signedVNPayCallback(t, svc, resp.OrderCode, "00")
	params.Set("vnp_Amount", "1")

	_, err := svc.HandleVNPayCallback(context.Background(), params)
	require.ErrorIs(t, err, ErrBadSignature)

	var order models.Order
	require.NoError(t, db.Where("order_code = ?", resp.OrderCode).First(&order).Error)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}

func TestHandleVNPayCallback_FailureCodeMarksFailed(t *testing.T) {
	t.Parallel()

	svc, db := newPaymentEnv(t)
	resp := placePendingVNPayOrder(t, svc, db)

	params := signedVNPayCallback(t, svc, resp.OrderCode, "24")

	applied, err := svc.HandleVNPayCallback(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, applied)

	var order models.Order
	require.NoError(t, db.Where("order_code = ?", resp.OrderCode).First(&order).Error)
	assert.Equal(t, models.PaymentStatusFailed, order.PaymentStatus)
}

func TestHandleVNPayCallback_UnknownOrder(t *testing.T) {
	t.Parallel()

	svc, _ := newPaymentEnv(t)

	params := signedVNPayCallback(t, svc, "ORD-nope", "00")

	_, err := svc.HandleVNPayCallback(context.Background(), params)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHandleMoMoIPN_SuccessAndDuplicate(t *testing.T) {
	t.Parallel()

	svc, db := newPaymentEnv(t)
	resp := placePendingVNPayOrder(t, svc, db)
	ctx := context.Background()

	// reuse the pending order for a momo notification
	n := momoSignedIPN(svc.MoMo, resp.OrderCode, 0)

	applied, err := svc.HandleMoMoIPN(ctx, n)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = svc.HandleMoMoIPN(ctx, n)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestHandleMoMoIPN_BadSignature(t *testing.T) {
	t.Parallel()

	svc, db := newPaymentEnv(t)
	resp := placePendingVNPayOrder(t, svc, db)

	n := momoSignedIPN(svc.MoMo, resp.OrderCode, 0)
	n.Amount++

	_, err := svc.HandleMoMoIPN(context.Background(), n)
	require.ErrorIs(t, err, ErrBadSignature)

	var order models.Order
	require.NoError(t, db.Where("order_code = ?", resp.OrderCode).First(&order).Error)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
}
