// Package export 负责数据集与平面文件之间的转换：每类实体一个 CSV（可选 JSON），
// 以及回读时按实体逐字段解析为强类型记录。
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrMissingInput 表示导出目录或某个实体文件不存在。
	ErrMissingInput = errors.New("missing input")
	// ErrMalformed 表示文件内容无法解析为对应实体。
	ErrMalformed = errors.New("malformed row")
)

// Kind 标识一类实体文件，顺序即依赖顺序（父表在前）。
type Kind string

const (
	Users      Kind = "users"
	Products   Kind = "products"
	Orders     Kind = "orders"
	OrderItems Kind = "order_items"
	Payments   Kind = "payments"
)

var Kinds = []Kind{Users, Products, Orders, OrderItems, Payments}

// Header 返回实体字段名，顺序与数据模型一致。
func (k Kind) Header() []string {
	switch k {
	case Users:
		return []string{"user_id", "name", "email", "phone", "created_at"}
	case Products:
		return []string{"product_id", "name", "category", "price", "stock"}
	case Orders:
		return []string{"order_id", "user_id", "order_date", "total_amount"}
	case OrderItems:
		return []string{"order_item_id", "order_id", "product_id", "quantity", "unit_price"}
	case Payments:
		return []string{"payment_id", "order_id", "amount", "method", "status", "paid_at"}
	}
	return nil
}

func (k Kind) CSVName() string  { return string(k) + ".csv" }
func (k Kind) JSONName() string { return string(k) + ".json" }

// EnsureDir 确认目录存在，不存在时返回 ErrMissingInput。
func EnsureDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: data directory not found at %s", ErrMissingInput, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingInput, dir)
	}
	return nil
}

func openInput(dir string, name string) (*os.File, error) {
	path := filepath.Join(dir, name)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, err
	}
	return f, nil
}
