package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type MoMo struct {
	PartnerCode string
	AccessKey   string
	SecretKey   string
	Endpoint    string
	RedirectURL string
	IPNURL      string

	HTTPClient *http.Client
}

func NewMoMo(partnerCode, accessKey, secretKey, endpoint, redirectURL, ipnURL string) *MoMo {
	return &MoMo{
		PartnerCode: partnerCode,
		AccessKey:   accessKey,
		SecretKey:   secretKey,
		Endpoint:    endpoint,
		RedirectURL: redirectURL,
		IPNURL:      ipnURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	AccessKey   string `json:"accessKey"`
	RequestID   string `json:"requestId"`
	Amount      string `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	ExtraData   string `json:"extraData"`
	RequestType string `json:"requestType"`
	Lang        string `json:"lang"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
}

// IPNRequest is the server-to-server notification body MoMo posts back.
type IPNRequest struct {
	PartnerCode  string `json:"partnerCode"`
	OrderID      string `json:"orderId"`
	RequestID    string `json:"requestId"`
	Amount       int64  `json:"amount"`
	OrderInfo    string `json:"orderInfo"`
	OrderType    string `json:"orderType"`
	TransID      int64  `json:"transId"`
	ResultCode   int    `json:"resultCode"`
	Message      string `json:"message"`
	PayType      string `json:"payType"`
	ResponseTime int64  `json:"responseTime"`
	ExtraData    string `json:"extraData"`
	Signature    string `json:"signature"`
}

const momoRequestType = "captureWallet"

// CreatePayment signs a create request and exchanges it with MoMo for the
// hosted pay page URL.
func (m *MoMo) CreatePayment(ctx context.Context, amount float64, orderCode, orderInfo string) (string, error) {
	requestID := uuid.NewString()
	amountStr := strconv.FormatInt(int64(amount), 10)

	raw := fmt.Sprintf(
		"accessKey=%s&amount=%s&extraData=%s&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=%s",
		m.AccessKey, amountStr, "", m.IPNURL, orderCode, orderInfo,
		m.PartnerCode, m.RedirectURL, requestID, momoRequestType,
	)

	reqBody := momoCreateRequest{
		PartnerCode: m.PartnerCode,
		AccessKey:   m.AccessKey,
		RequestID:   requestID,
		Amount:      amountStr,
		OrderID:     orderCode,
		OrderInfo:   orderInfo,
		RedirectURL: m.RedirectURL,
		IPNURL:      m.IPNURL,
		ExtraData:   "",
		RequestType: momoRequestType,
		Lang:        "vi",
		Signature:   m.Sign(raw),
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("momo: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("momo: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("momo: do request: %w", err)
	}
	defer resp.Body.Close()

	var result momoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("momo: decode response: %w", err)
	}

	if result.ResultCode != 0 {
		return "", fmt.Errorf("momo: create failed: %s (code %d)", result.Message, result.ResultCode)
	}
	return result.PayURL, nil
}

// VerifyIPN recomputes the notification signature over the canonical field
// order MoMo documents and compares it against the received one.
func (m *MoMo) VerifyIPN(n *IPNRequest) error {
	raw := fmt.Sprintf(
		"accessKey=%s&amount=%d&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%d&resultCode=%d&transId=%d",
		m.AccessKey, n.Amount, n.ExtraData, n.Message, n.OrderID, n.OrderInfo,
		n.OrderType, n.PartnerCode, n.PayType, n.RequestID, n.ResponseTime,
		n.ResultCode, n.TransID,
	)

	expected := m.Sign(raw)
	if !hmac.Equal([]byte(expected), []byte(n.Signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (m *MoMo) Sign(raw string) string {
	mac := hmac.New(sha256.New, []byte(m.SecretKey))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
