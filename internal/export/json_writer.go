package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ecomdata/internal/model"
)

// WriteJSON 写出与 CSV 同名字段的 JSON 数组副本。
func WriteJSON(dir string, ds model.Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	docs := map[Kind]any{
		Users:      nonNil(ds.Users),
		Products:   nonNil(ds.Products),
		Orders:     nonNil(ds.Orders),
		OrderItems: nonNil(ds.OrderItems),
		Payments:   nonNil(ds.Payments),
	}
	for _, k := range Kinds {
		if err := writeJSONFile(filepath.Join(dir, k.JSONName()), docs[k]); err != nil {
			return fmt.Errorf("write %s: %w", k.JSONName(), err)
		}
	}
	return nil
}

// RemoveJSON 删除上一次运行留下的 JSON 副本，文件不存在不算错误。
func RemoveJSON(dir string) error {
	for _, k := range Kinds {
		if err := os.Remove(filepath.Join(dir, k.JSONName())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", k.JSONName(), err)
		}
	}
	return nil
}

func writeJSONFile(path string, v any) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// nonNil 让空集合编码为 [] 而不是 null。
func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
