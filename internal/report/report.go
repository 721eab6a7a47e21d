// Package report 读取关系库中的多表连接结果，并渲染为定宽文本表格。
package report

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ecomdata/internal/money"

	"gorm.io/gorm"
)

// ErrNoData 表示库中没有任何可展示的订单明细。
var ErrNoData = errors.New("no data found")

// NoDataMessage 是空库时输出给操作者的提示。
const NoDataMessage = "No data found. Verify the database has been populated."

// NotAvailable 是缺少支付记录时的占位值。
const NotAvailable = "N/A"

// Headers 报表列名，顺序与 Row.Cells 一致。
var Headers = []string{
	"user_id",
	"name",
	"order_id",
	"product_name",
	"quantity",
	"unit_price",
	"total_amount",
	"payment_status",
	"payment_method",
}

// Row 每个（订单, 明细）一行。
type Row struct {
	UserID        int         `gorm:"column:user_id" json:"user_id"`
	Name          string      `gorm:"column:name" json:"name"`
	OrderID       int         `gorm:"column:order_id" json:"order_id"`
	ProductName   string      `gorm:"column:product_name" json:"product_name"`
	Quantity      int         `gorm:"column:quantity" json:"quantity"`
	UnitPrice     money.Money `gorm:"column:unit_price" json:"unit_price"`
	TotalAmount   money.Money `gorm:"column:total_amount" json:"total_amount"`
	PaymentStatus string      `gorm:"column:payment_status" json:"payment_status"`
	PaymentMethod string      `gorm:"column:payment_method" json:"payment_method"`
}

// Cells 按 Headers 顺序返回渲染后的单元格，金额固定两位小数。
func (r Row) Cells() []string {
	return []string{
		strconv.Itoa(r.UserID),
		r.Name,
		strconv.Itoa(r.OrderID),
		r.ProductName,
		strconv.Itoa(r.Quantity),
		r.UnitPrice.String(),
		r.TotalAmount.String(),
		r.PaymentStatus,
		r.PaymentMethod,
	}
}

// reportQuery 明细 → 订单 → 用户 → 商品 内连接，支付左连接。
const reportQuery = `
SELECT
    u.user_id,
    u.name,
    o.order_id,
    p.name AS product_name,
    oi.quantity,
    oi.unit_price,
    o.total_amount,
    COALESCE(pay.status, 'N/A') AS payment_status,
    COALESCE(pay.method, 'N/A') AS payment_method
FROM order_items oi
JOIN orders o ON oi.order_id = o.order_id
JOIN users u ON o.user_id = u.user_id
JOIN products p ON oi.product_id = p.product_id
LEFT JOIN payments pay ON pay.order_id = o.order_id
ORDER BY u.user_id, o.order_id, oi.order_item_id`

// Fetch 执行报表查询；没有任何行时返回 ErrNoData。
func Fetch(ctx context.Context, db *gorm.DB) ([]Row, error) {
	var rows []Row
	if err := db.WithContext(ctx).Raw(reportQuery).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("report query: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}
