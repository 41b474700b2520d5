package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	PaymentMethodCOD   = "cod"
	PaymentMethodVNPay = "vnpay"
	PaymentMethodMoMo  = "momo"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"

	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	Phone        string    `gorm:"index"                    json:"phone"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `gorm:"not null;default:customer" json:"role"`
	GoogleID     string    `gorm:"index"                    json:"-"`
	IsVerified   bool      `gorm:"default:false"            json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
}

type Address struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint   `gorm:"index;not null"           json:"user_id"`
	Recipient string `gorm:"not null"                 json:"recipient"`
	Phone     string `gorm:"not null"                 json:"phone"`
	Line      string `gorm:"not null"                 json:"line"`
	Ward      string `json:"ward"`
	District  string `json:"district"`
	Province  string `json:"province"`
	IsDefault bool   `gorm:"default:false"            json:"is_default"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"uniqueIndex;not null"     json:"name"`
	Description string `json:"description"`
}

type Brand struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
	Logo string `json:"logo"`
}

type Product struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"not null"                 json:"name"`
	Description   string         `json:"description"`
	Price         float64        `gorm:"not null"                 json:"price"`
	StockQuantity uint           `gorm:"not null;default:0"       json:"stock_quantity"`
	CategoryID    uint           `gorm:"index"                    json:"category_id"`
	BrandID       uint           `gorm:"index"                    json:"brand_id"`
	Images        []ProductImage `gorm:"foreignKey:ProductID"     json:"images,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null"           json:"product_id"`
	URL       string `gorm:"not null"                 json:"url"`
	IsPrimary bool   `gorm:"default:false"            json:"is_primary"`
}

type CartItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement"                   json:"id"`
	UserID    uint     `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID uint     `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Quantity  uint     `gorm:"default:1;check:quantity>0"                 json:"quantity"`
	Product   *Product `gorm:"foreignKey:ProductID"                       json:"product,omitempty"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderCode       string      `gorm:"uniqueIndex"              json:"order_code"`
	UserID          uint        `gorm:"index;not null"           json:"user_id"`
	AddressID       uint        `gorm:"not null"                 json:"address_id"`
	ShippingAddress string      `gorm:"not null"                 json:"shipping_address"`
	PaymentMethod   string      `gorm:"not null"                 json:"payment_method"`
	PaymentStatus   string      `gorm:"not null"                 json:"payment_status"`
	OrderStatus     string      `gorm:"not null"                 json:"order_status"`
	TotalAmount     float64     `gorm:"not null"                 json:"total_amount"`
	ShippingFee     float64     `json:"shipping_fee"`
	DiscountAmount  float64     `json:"discount_amount"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"       json:"items,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"   json:"id"`
	OrderID   uint    `gorm:"index;not null"             json:"order_id"`
	ProductID uint    `gorm:"not null"                   json:"product_id"`
	Quantity  uint    `gorm:"default:1;check:quantity>0" json:"quantity"`
	Price     float64 `gorm:"not null"                   json:"price"`
}

type DiscountCode struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null"     json:"code"`
	Percent   float64   `json:"percent"`
	Amount    float64   `json:"amount"`
	StartDate time.Time `gorm:"not null"                 json:"start_date"`
	EndDate   time.Time `gorm:"not null"                 json:"end_date"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                     json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_review_user_product;not null" json:"user_id"`
	ProductID uint      `gorm:"uniqueIndex:idx_review_user_product;not null" json:"product_id"`
	Rating    uint      `gorm:"not null;check:rating>=1 AND rating<=5"       json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null"                 json:"title"`
	Content   string    `json:"content"`
	Published bool      `gorm:"default:false"            json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

type ContactForm struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Email     string    `gorm:"not null"                 json:"email"`
	Message   string    `gorm:"not null"                 json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// All returns every model registered for auto-migration.
func All() []any {
	return []any{
		&User{}, &Address{}, &Category{}, &Brand{}, &Product{}, &ProductImage{},
		&CartItem{}, &Order{}, &OrderItem{}, &DiscountCode{}, &Review{},
		&Post{}, &ContactForm{},
	}
}
