package payment

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSignature = errors.New("invalid signature")

type VNPay struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

// BuildPayURL produces the signed redirect URL for the hosted payment page.
// Amount is charged in minor units, so VND values are multiplied by 100.
func (v *VNPay) BuildPayURL(amount float64, orderCode, orderInfo, clientIP string, now time.Time) string {
	params := map[string]string{
		"vnp_Version":    "2.1.0",
		"vnp_Command":    "pay",
		"vnp_TmnCode":    v.TmnCode,
		"vnp_Amount":     strconv.FormatInt(int64(amount*100), 10),
		"vnp_CurrCode":   "VND",
		"vnp_TxnRef":     orderCode,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  "other",
		"vnp_Locale":     "vn",
		"vnp_ReturnUrl":  v.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": now.Format("20060102150405"),
	}

	sig := v.sign(params)

	q := url.Values{}
	for k, val := range params {
		q.Set(k, val)
	}
	q.Set("vnp_SecureHash", sig)

	return v.PayURL + "?" + q.Encode()
}

// VerifyCallback recomputes the signature over every received parameter
// except the hash fields and compares it against vnp_SecureHash.
func (v *VNPay) VerifyCallback(params url.Values) error {
	received := params.Get("vnp_SecureHash")
	if received == "" {
		return ErrInvalidSignature
	}

	m := make(map[string]string, len(params))
	for k := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		m[k] = params.Get(k)
	}

	expected := v.sign(m)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(received))) {
		return ErrInvalidSignature
	}
	return nil
}

// IsSuccess reports whether a verified callback carries the provider
// success code.
func (v *VNPay) IsSuccess(params url.Values) bool {
	return params.Get("vnp_ResponseCode") == "00"
}

// sign canonicalizes the parameter map sorted by key without URL-encoding
// and computes an HMAC-SHA512 over it with the merchant secret.
func (v *VNPay) sign(params map[string]string) string {
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

	mac := hmac.New(sha512.New, []byte(v.HashSecret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
