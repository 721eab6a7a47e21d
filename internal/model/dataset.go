package model

import (
	"errors"
	"fmt"
	"time"

	"ecomdata/internal/money"
)

const (
	MaxItemsPerOrder = 4
	MinPaymentDelay  = time.Hour
	MaxPaymentDelay  = 48 * time.Hour
)

// Dataset 一次生成的全部实体，按主键顺序排列。
type Dataset struct {
	Users      []User
	Products   []Product
	Orders     []Order
	OrderItems []OrderItem
	Payments   []Payment
}

// ItemsByOrder 按订单分组明细，组内保持原有顺序。
func (ds Dataset) ItemsByOrder() map[int][]OrderItem {
	out := make(map[int][]OrderItem, len(ds.Orders))
	for _, it := range ds.OrderItems {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out
}

// Check 校验跨实体一致性：外键、金额、每单明细数、支付时间与主键连续性。
// 返回的 error 汇总了全部违例。
func (ds Dataset) Check() error {
	var errs []error
	add := func(format string, args ...any) { errs = append(errs, fmt.Errorf(format, args...)) }

	users := make(map[int]bool, len(ds.Users))
	for i, u := range ds.Users {
		if u.UserID != i+1 {
			add("users[%d]: user_id %d breaks dense sequence", i, u.UserID)
		}
		users[u.UserID] = true
	}
	products := make(map[int]bool, len(ds.Products))
	for i, p := range ds.Products {
		if p.ProductID != i+1 {
			add("products[%d]: product_id %d breaks dense sequence", i, p.ProductID)
		}
		if p.Stock < 0 {
			add("product %d: negative stock %d", p.ProductID, p.Stock)
		}
		products[p.ProductID] = true
	}

	orders := make(map[int]Order, len(ds.Orders))
	for i, o := range ds.Orders {
		if o.OrderID != i+1 {
			add("orders[%d]: order_id %d breaks dense sequence", i, o.OrderID)
		}
		if !users[o.UserID] {
			add("order %d: user_id %d does not exist", o.OrderID, o.UserID)
		}
		orders[o.OrderID] = o
	}

	for i, it := range ds.OrderItems {
		if it.OrderItemID != i+1 {
			add("order_items[%d]: order_item_id %d breaks dense sequence", i, it.OrderItemID)
		}
		if _, ok := orders[it.OrderID]; !ok {
			add("order_item %d: order_id %d does not exist", it.OrderItemID, it.OrderID)
		}
		if !products[it.ProductID] {
			add("order_item %d: product_id %d does not exist", it.OrderItemID, it.ProductID)
		}
		if it.Quantity < 1 {
			add("order_item %d: quantity %d must be positive", it.OrderItemID, it.Quantity)
		}
	}

	byOrder := ds.ItemsByOrder()
	for _, o := range ds.Orders {
		items := byOrder[o.OrderID]
		if len(items) < 1 || len(items) > MaxItemsPerOrder {
			add("order %d: has %d items, want 1..%d", o.OrderID, len(items), MaxItemsPerOrder)
		}
		seen := make(map[int]bool, len(items))
		lines := make([]money.Money, 0, len(items))
		for _, it := range items {
			if seen[it.ProductID] {
				add("order %d: product %d repeated", o.OrderID, it.ProductID)
			}
			seen[it.ProductID] = true
			lines = append(lines, it.LineTotal())
		}
		if want := money.OrderTotal(lines...); want != o.TotalAmount {
			add("order %d: total_amount %s, items sum to %s", o.OrderID, o.TotalAmount, want)
		}
	}

	paid := make(map[int]int, len(ds.Payments))
	for i, p := range ds.Payments {
		if p.PaymentID != i+1 {
			add("payments[%d]: payment_id %d breaks dense sequence", i, p.PaymentID)
		}
		o, ok := orders[p.OrderID]
		if !ok {
			add("payment %d: order_id %d does not exist", p.PaymentID, p.OrderID)
			continue
		}
		paid[p.OrderID]++
		if !p.Method.Valid() {
			add("payment %d: unknown method %q", p.PaymentID, p.Method)
		}
		if !p.Status.Valid() {
			add("payment %d: unknown status %q", p.PaymentID, p.Status)
		}
		if p.Amount != o.TotalAmount {
			add("payment %d: amount %s != order %d total %s", p.PaymentID, p.Amount, o.OrderID, o.TotalAmount)
		}
		if gap := p.PaidAt.Sub(o.OrderDate); gap < MinPaymentDelay || gap > MaxPaymentDelay {
			add("payment %d: paid %s after order, want %s..%s", p.PaymentID, gap, MinPaymentDelay, MaxPaymentDelay)
		}
	}
	for _, o := range ds.Orders {
		if n := paid[o.OrderID]; n != 1 {
			add("order %d: has %d payments, want 1", o.OrderID, n)
		}
	}

	return errors.Join(errs...)
}
