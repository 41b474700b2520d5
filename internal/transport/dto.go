package transport

import "github.com/hoanglamvn01/cosmetic_shop/internal/models"

type CreateProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	StockQuantity uint     `json:"stock_quantity"`
	CategoryID    uint     `json:"category_id"`
	BrandID       uint     `json:"brand_id"`
	Images        []string `json:"images"`
}

type PatchProductRequest struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	StockQuantity *uint    `json:"stock_quantity"`
	CategoryID    *uint    `json:"category_id"`
	BrandID       *uint    `json:"brand_id"`
}

// ProductView is a catalog product together with its review aggregates.
type ProductView struct {
	models.Product
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BrandRequest struct {
	Name string `json:"name"`
	Logo string `json:"logo"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity uint `json:"quantity"`
}

type AddressRequest struct {
	Recipient string `json:"recipient"`
	Phone     string `json:"phone"`
	Line      string `json:"line"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
	IsDefault bool   `json:"is_default"`
}

type ApplyDiscountRequest struct {
	Code       string  `json:"code"`
	OrderValue float64 `json:"order_value"`
}

type CreateDiscountRequest struct {
	Code      string  `json:"code"`
	Percent   float64 `json:"percent"`
	Amount    float64 `json:"amount"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type ApplyDiscountResponse struct {
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
	FinalAmount    float64 `json:"final_amount"`
}

type OrderItemInput struct {
	ProductID uint    `json:"product_id"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items         []OrderItemInput `json:"items"`
	AddressID     uint             `json:"address_id"`
	NewAddress    *AddressRequest  `json:"new_address"`
	PaymentMethod string           `json:"payment_method"`
	CouponCode    string           `json:"coupon_code"`
	ShippingFee   float64          `json:"shipping_fee"`
}

type CreateOrderResponse struct {
	OrderID   uint   `json:"order_id"`
	OrderCode string `json:"order_code"`
	PayURL    string `json:"pay_url,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	IsAdmin     bool   `json:"is_admin"`
}

type OTPRequest struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

type CreateReviewRequest struct {
	ProductID uint   `json:"product_id"`
	Rating    uint   `json:"rating"`
	Comment   string `json:"comment"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
