package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"ecomdata/internal/model"
	"ecomdata/internal/money"
)

// ReadCSV 读取目录下的五个 CSV 并逐行解析为强类型记录。
// 任一文件缺失返回 ErrMissingInput，任一行格式错误返回 ErrMalformed。
func ReadCSV(dir string) (model.Dataset, error) {
	if err := EnsureDir(dir); err != nil {
		return model.Dataset{}, err
	}

	var ds model.Dataset
	for _, k := range Kinds {
		err := readCSVFile(dir, k, func(r row) error {
			switch k {
			case Users:
				u, err := parseUser(r)
				ds.Users = append(ds.Users, u)
				return err
			case Products:
				p, err := parseProduct(r)
				ds.Products = append(ds.Products, p)
				return err
			case Orders:
				o, err := parseOrder(r)
				ds.Orders = append(ds.Orders, o)
				return err
			case OrderItems:
				it, err := parseOrderItem(r)
				ds.OrderItems = append(ds.OrderItems, it)
				return err
			case Payments:
				p, err := parsePayment(r)
				ds.Payments = append(ds.Payments, p)
				return err
			}
			return nil
		})
		if err != nil {
			return model.Dataset{}, err
		}
	}
	return ds, nil
}

// row 是带定位信息的一行原始字段。
type row struct {
	file   string
	line   int
	fields []string
	err    error
}

func (r *row) fail(col int, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s line %d column %d: %v", ErrMalformed, r.file, r.line, col+1, err)
	}
}

func (r *row) str(col int) string { return r.fields[col] }

func (r *row) atoi(col int) int {
	v, err := strconv.Atoi(r.fields[col])
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *row) amount(col int) money.Money {
	v, err := money.Parse(r.fields[col])
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *row) date(col int) model.Date {
	v, err := model.ParseDate(r.fields[col])
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func (r *row) timestamp(col int) model.Timestamp {
	v, err := model.ParseTimestamp(r.fields[col])
	if err != nil {
		r.fail(col, err)
	}
	return v
}

func readCSVFile(dir string, k Kind, fn func(row) error) error {
	f, err := openInput(dir, k.CSVName())
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: %s is empty", ErrMalformed, k.CSVName())
		}
		return fmt.Errorf("%w: %s header: %v", ErrMalformed, k.CSVName(), err)
	}
	if want := k.Header(); !slices.Equal(header, want) {
		return fmt.Errorf("%w: %s header %v, want %v", ErrMalformed, k.CSVName(), header, want)
	}

	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMalformed, k.CSVName(), err)
		}
		line, _ := cr.FieldPos(0)
		if err := fn(row{file: k.CSVName(), line: line, fields: fields}); err != nil {
			return err
		}
	}
}

func parseUser(r row) (model.User, error) {
	u := model.User{
		UserID:    r.atoi(0),
		Name:      r.str(1),
		Email:     r.str(2),
		Phone:     r.str(3),
		CreatedAt: r.date(4),
	}
	return u, r.err
}

func parseProduct(r row) (model.Product, error) {
	p := model.Product{
		ProductID: r.atoi(0),
		Name:      r.str(1),
		Category:  r.str(2),
		Price:     r.amount(3),
		Stock:     r.atoi(4),
	}
	if p.Stock < 0 && r.err == nil {
		r.fail(4, fmt.Errorf("negative stock %d", p.Stock))
	}
	return p, r.err
}

func parseOrder(r row) (model.Order, error) {
	o := model.Order{
		OrderID:     r.atoi(0),
		UserID:      r.atoi(1),
		OrderDate:   r.timestamp(2),
		TotalAmount: r.amount(3),
	}
	return o, r.err
}

func parseOrderItem(r row) (model.OrderItem, error) {
	it := model.OrderItem{
		OrderItemID: r.atoi(0),
		OrderID:     r.atoi(1),
		ProductID:   r.atoi(2),
		Quantity:    r.atoi(3),
		UnitPrice:   r.amount(4),
	}
	if it.Quantity < 1 && r.err == nil {
		r.fail(3, fmt.Errorf("quantity %d must be positive", it.Quantity))
	}
	return it, r.err
}

func parsePayment(r row) (model.Payment, error) {
	p := model.Payment{
		PaymentID: r.atoi(0),
		OrderID:   r.atoi(1),
		Amount:    r.amount(2),
		Method:    model.PaymentMethod(r.str(3)),
		Status:    model.PaymentStatus(r.str(4)),
		PaidAt:    r.timestamp(5),
	}
	if !p.Method.Valid() {
		r.fail(3, fmt.Errorf("unknown payment method %q", p.Method))
	}
	if !p.Status.Valid() {
		r.fail(4, fmt.Errorf("unknown payment status %q", p.Status))
	}
	return p, r.err
}
