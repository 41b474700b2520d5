package payment

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVNPay() *VNPay {
	return &VNPay{
		TmnCode:    "TESTCODE",
		HashSecret: "test-hash-secret",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/payments/vnpay_return",
	}
}

func TestVNPay_BuildPayURL_RoundTripVerifies(t *testing.T) {
	t.Parallel()

	v := newTestVNPay()
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	payURL := v.BuildPayURL(200000, "ORD-20250314092653-1", "Thanh toan don hang ORD-20250314092653-1", "10.0.0.1", now)

	u, err := url.Parse(payURL)
	require.NoError(t, err)
	params := u.Query()

	assert.Equal(t, "20000000", params.Get("vnp_Amount"))
	assert.Equal(t, "ORD-20250314092653-1", params.Get("vnp_TxnRef"))
	assert.Equal(t, "20250314092653", params.Get("vnp_CreateDate"))
	assert.NotEmpty(t, params.Get("vnp_SecureHash"))

	require.NoError(t, v.VerifyCallback(params))
}

func TestVNPay_VerifyCallback_RejectsTamperedAmount(t *testing.T) {
	t.Parallel()

	v := newTestVNPay()
	now := time.Now()

	payURL := v.BuildPayURL(200000, "ORD-1", "info", "10.0.0.1", now)
	u, err := url.Parse(payURL)
	require.NoError(t, err)

	params := u.Query()
	params.Set("vnp_Amount", "100")

	require.ErrorIs(t, v.VerifyCallback(params), ErrInvalidSignature)
}

func TestVNPay_VerifyCallback_MissingHash(t *testing.T) {
	t.Parallel()

	v := newTestVNPay()

	params := url.Values{}
	params.Set("vnp_TxnRef", "ORD-1")
	params.Set("vnp_ResponseCode", "00")

	require.ErrorIs(t, v.VerifyCallback(params), ErrInvalidSignature)
}

func TestVNPay_VerifyCallback_IgnoresHashTypeParam(t *testing.T) {
	t.Parallel()

	v := newTestVNPay()
	now := time.Now()

	payURL := v.BuildPayURL(50000, "ORD-2", "info", "10.0.0.1", now)
	u, err := url.Parse(payURL)
	require.NoError(t, err)

	params := u.Query()
	params.Set("vnp_SecureHashType", "HMACSHA512")

	require.NoError(t, v.VerifyCallback(params))
}

func TestVNPay_IsSuccess(t *testing.T) {
	t.Parallel()

	v := newTestVNPay()

	ok := url.Values{"vnp_ResponseCode": []string{"00"}}
	assert.True(t, v.IsSuccess(ok))

	declined := url.Values{"vnp_ResponseCode": []string{"24"}}
	assert.False(t, v.IsSuccess(declined))
}
