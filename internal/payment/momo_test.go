package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMoMo(endpoint string) *MoMo {
	m := NewMoMo("PARTNER", "access-key", "secret-key", endpoint, "http://localhost:3000/payment-result", "http://localhost:8080/api/payments/momo_ipn")
	return m
}

func signedIPN(m *MoMo, resultCode int) *IPNRequest {
	n := &IPNRequest{
		PartnerCode:  m.PartnerCode,
		OrderID:      "ORD-20250314092653-1",
		RequestID:    "req-1",
		Amount:       200000,
		OrderInfo:    "Thanh toan don hang ORD-20250314092653-1",
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

func TestMoMo_VerifyIPN_AcceptsValidSignature(t *testing.T) {
	t.Parallel()

	m := newTestMoMo("")
	n := signedIPN(m, 0)

	require.NoError(t, m.VerifyIPN(n))
}

func TestMoMo_VerifyIPN_RejectsTamperedAmount(t *testing.T) {
	t.Parallel()

	m := newTestMoMo("")
	n := signedIPN(m, 0)
	n.Amount = 1

	require.ErrorIs(t, m.VerifyIPN(n), ErrInvalidSignature)
}

func TestMoMo_VerifyIPN_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	m := newTestMoMo("")
	n := signedIPN(m, 0)

	other := newTestMoMo("")
	other.SecretKey = "different-secret"
	require.ErrorIs(t, other.VerifyIPN(n), ErrInvalidSignature)
}

func TestMoMo_CreatePayment_SignsRequestAndReturnsPayURL(t *testing.T) {
	t.Parallel()

	var m *MoMo

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req momoCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		raw := fmt.Sprintf(
			"accessKey=%s&amount=%s&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
			req.AccessKey, req.Amount, req.ExtraData, req.IPNURL, req.OrderID,
			req.OrderInfo, req.PartnerCode, req.RedirectURL, req.RequestID, req.RequestType,
		)
		assert.Equal(t, m.Sign(raw), req.Signature)
		assert.Equal(t, "200000", req.Amount)
		assert.Equal(t, "captureWallet", req.RequestType)

		json.NewEncoder(w).Encode(momoCreateResponse{
			ResultCode: 0,
			Message:    "Successful.",
			PayURL:     "https://test-payment.momo.vn/pay/abc",
		})
	}))
	defer srv.Close()

	m = newTestMoMo(srv.URL)

	payURL, err := m.CreatePayment(context.Background(), 200000, "ORD-1", "info")
	require.NoError(t, err)
	assert.Equal(t, "https://test-payment.momo.vn/pay/abc", payURL)
}

func TestMoMo_CreatePayment_ProviderError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(momoCreateResponse{
			ResultCode: 41,
			Message:    "Duplicate orderId",
		})
	}))
	defer srv.Close()

	m := newTestMoMo(srv.URL)

	_, err := m.CreatePayment(context.Background(), 200000, "ORD-1", "info")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code 41")
}
