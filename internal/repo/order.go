package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hoanglamvn01/cosmetic_shop/internal/models"
)

type OrderRepo struct {
	DB *gorm.DB
}

// OrderCode derives the human-readable order identifier from the creation
// time and the numeric order id.
func OrderCode(t time.Time, id uint) string {
	return fmt.Sprintf("ORD-%s-%d", t.Format("20060102150405"), id)
}

// FlattenAddress composes the single-line shipping address stored on the
// order header.
func FlattenAddress(a *models.Address) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Line, a.Ward, a.District, a.Province} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type CreateOrderParams struct {
	Order      *models.Order
	Items      []models.OrderItem
	AddressID  uint
	NewAddress *models.Address
	Now        time.Time
}

// CreateOrder persists the order header, decrements stock per line item with
// a conditional guard, snapshots the items and clears them from the cart, all
// in one transaction. Any failure rolls the whole order back.
func (r *OrderRepo) CreateOrder(ctx context.Context, p CreateOrderParams) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var addr models.Address
		if p.NewAddress != nil {
			addr = *p.NewAddress
			addr.UserID = p.Order.UserID
			if err := tx.Create(&addr).Error; err != nil {
				return err
			}
		} else {
			err := tx.Where("id = ? AND user_id = ?", p.AddressID, p.Order.UserID).First(&addr).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAddressNotFound
			}
			if err != nil {
				return err
			}
		}

		p.Order.AddressID = addr.ID
		p.Order.ShippingAddress = FlattenAddress(&addr)

		if err := tx.Create(p.Order).Error; err != nil {
			return err
		}

		// The code needs the generated id, so it is set in a second
		// statement, still inside the transaction.
		p.Order.OrderCode = OrderCode(p.Now, p.Order.ID)
		if err := tx.Model(p.Order).Update("order_code", p.Order.OrderCode).Error; err != nil {
			return err
		}

		productIDs := make([]uint, 0, len(p.Items))
		for i := range p.Items {
			item := &p.Items[i]

			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
			}

			item.OrderID = p.Order.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			productIDs = append(productIDs, item.ProductID)
		}

		if err := tx.Where("user_id = ? AND product_id IN ?", p.Order.UserID, productIDs).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (r *OrderRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) GetOrderByCode(ctx context.Context, code string) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("order_code = ?", code).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepo) ListUserOrders(ctx context.Context, userID uint, offset, limit int) (int64, []models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := q.Preload("Items").Order("created_at DESC").
		Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

func (r *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) error {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).Update("order_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkPaid flips payment_status pending→paid. The guard makes duplicate
// provider callbacks a no-op: the first one wins, later ones report
// applied=false.
func (r *OrderRepo) MarkPaid(ctx context.Context, orderCode string) (bool, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("order_code = ? AND payment_status = ?", orderCode, models.PaymentStatusPending).
		Update("payment_status", models.PaymentStatusPaid)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("order_code = ?", orderCode).Count(&count).Error; err != nil {
		return false, err
	}
	if count == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return false, nil
}

func (r *OrderRepo) MarkPaymentFailed(ctx context.Context, orderCode string) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("order_code = ? AND payment_status = ?", orderCode, models.PaymentStatusPending).
		Update("payment_status", models.PaymentStatusFailed).Error
}
