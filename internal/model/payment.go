package model

import (
	"slices"

	"ecomdata/internal/money"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "Credit Card"
	MethodDebitCard  PaymentMethod = "Debit Card"
	MethodPayPal     PaymentMethod = "PayPal"
	MethodApplePay   PaymentMethod = "Apple Pay"
)

// PaymentMethods 按抽样顺序排列，顺序变化会改变生成结果。
var PaymentMethods = []PaymentMethod{MethodCreditCard, MethodDebitCard, MethodPayPal, MethodApplePay}

// Valid 是否为已知支付方式。
func (m PaymentMethod) Valid() bool { return slices.Contains(PaymentMethods, m) }

type PaymentStatus string

const (
	StatusCompleted PaymentStatus = "Completed"
	StatusPending   PaymentStatus = "Pending"
	StatusFailed    PaymentStatus = "Failed"
)

var PaymentStatuses = []PaymentStatus{StatusCompleted, StatusPending, StatusFailed}

func (s PaymentStatus) Valid() bool { return slices.Contains(PaymentStatuses, s) }

// Payment 每个订单一条，Amount 必须与订单 TotalAmount 完全一致。
type Payment struct {
	PaymentID int           `gorm:"primaryKey;autoIncrement:false" json:"payment_id"`
	OrderID   int           `gorm:"not null;index" json:"order_id"`
	Amount    money.Money   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method    PaymentMethod `gorm:"size:32" json:"method"`
	Status    PaymentStatus `gorm:"size:32" json:"status"`
	PaidAt    Timestamp     `gorm:"type:text" json:"paid_at"`

	Order Order `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT" json:"-"`
}

func (Payment) TableName() string { return "payments" }
