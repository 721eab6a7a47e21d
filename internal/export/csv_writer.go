package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"ecomdata/internal/model"
)

// WriteCSV 把数据集写为五个 CSV 文件，已存在的文件会被覆盖。
func WriteCSV(dir string, ds model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, k := range Kinds {
		if err := writeCSVFile(filepath.Join(dir, k.CSVName()), k.Header(), records(k, ds)); err != nil {
			return fmt.Errorf("write %s: %w", k.CSVName(), err)
		}
	}
	return nil
}

func writeCSVFile(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

// records 将实体转为字符串行，只做字符串化不改值。
func records(k Kind, ds model.Dataset) [][]string {
	itoa := strconv.Itoa
	var rows [][]string
	switch k {
	case Users:
		for _, u := range ds.Users {
			rows = append(rows, []string{itoa(u.UserID), u.Name, u.Email, u.Phone, u.CreatedAt.String()})
		}
	case Products:
		for _, p := range ds.Products {
			rows = append(rows, []string{itoa(p.ProductID), p.Name, p.Category, p.Price.String(), itoa(p.Stock)})
		}
	case Orders:
		for _, o := range ds.Orders {
			rows = append(rows, []string{itoa(o.OrderID), itoa(o.UserID), o.OrderDate.String(), o.TotalAmount.String()})
		}
	case OrderItems:
		for _, it := range ds.OrderItems {
			rows = append(rows, []string{itoa(it.OrderItemID), itoa(it.OrderID), itoa(it.ProductID), itoa(it.Quantity), it.UnitPrice.String()})
		}
	case Payments:
		for _, p := range ds.Payments {
			rows = append(rows, []string{itoa(p.PaymentID), itoa(p.OrderID), p.Amount.String(), string(p.Method), string(p.Status), p.PaidAt.String()})
		}
	}
	return rows
}
