package model

import "ecomdata/internal/money"

// Order 订单；TotalAmount 恒等于其明细金额之和（见 money.OrderTotal）。
type Order struct {
	OrderID     int         `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	UserID      int         `gorm:"not null;index" json:"user_id"`
	OrderDate   Timestamp   `gorm:"type:text" json:"order_date"`
	TotalAmount money.Money `gorm:"type:decimal(10,2);not null" json:"total_amount"`

	// 仅用于生成外键约束，读写都不加载关联。
	User User `gorm:"foreignKey:UserID;references:UserID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (Order) TableName() string { return "orders" }

// OrderItem 订单明细；UnitPrice 是下单时的商品价格快照。
type OrderItem struct {
	OrderItemID int         `gorm:"primaryKey;autoIncrement:false" json:"order_item_id"`
	OrderID     int         `gorm:"not null;index" json:"order_id"`
	ProductID   int         `gorm:"not null;index" json:"product_id"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	UnitPrice   money.Money `gorm:"type:decimal(10,2);not null" json:"unit_price"`

	Order   Order   `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
	Product Product `gorm:"foreignKey:ProductID;references:ProductID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal 单条明细金额（逐条舍入）。
func (it OrderItem) LineTotal() money.Money { return money.LineTotal(it.UnitPrice, it.Quantity) }
