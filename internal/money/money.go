package money

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Money 以分为单位保存金额，所有比较与求和都在整数上完成。
type Money int64

// Places 是金额固定的小数位数。
const Places = 2

// ErrOutOfRange 表示金额超出以分计的 int64 范围。
var ErrOutOfRange = errors.New("money out of range")

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// FromCents 直接由分构造金额。
func FromCents(cents int64) Money { return Money(cents) }

// FromDecimal 按 half-up（远离零）舍入到两位小数。调用方需保证 d 在范围内，
// 外部输入走 Parse / Scan。
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(Places).Shift(Places).IntPart())
}

// checked 同 FromDecimal，但超出范围时返回 ErrOutOfRange 而不是回绕。
func checked(d decimal.Decimal) (Money, error) {
	cents := d.Round(Places).Shift(Places)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, d.String())
	}
	return Money(cents.IntPart()), nil
}

// Parse 解析十进制字面量，例如 "12.345" -> 12.35。
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid money %q: %w", s, err)
	}
	return checked(d)
}

// MustParse 仅用于常量与测试。
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Cents() int64 { return int64(m) }

func (m Money) Decimal() decimal.Decimal { return decimal.New(int64(m), -Places) }

func (m Money) String() string { return m.Decimal().StringFixed(Places) }

func (m Money) Add(o Money) Money { return m + o }

// Mul 返回 m*qty；分单位下乘积天然精确。
func (m Money) Mul(qty int) Money { return m * Money(qty) }

// LineTotal 是单条明细的金额：unit*qty 舍入到两位。
func LineTotal(unit Money, qty int) Money {
	return FromDecimal(unit.Decimal().Mul(decimal.NewFromInt(int64(qty))))
}

// OrderTotal 先逐条舍入（由调用方通过 LineTotal 完成），再对总和舍入。
func OrderTotal(lines ...Money) Money {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Decimal())
	}
	return FromDecimal(sum)
}

func (m Money) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Money) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalJSON 输出带引号的定点字符串，避免下游按 float 解析。
func (m Money) MarshalJSON() ([]byte, error) { return json.Marshal(m.String()) }

func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	return m.UnmarshalText([]byte(s))
}

// Value 写入 decimal(10,2) 列时使用十进制文本。
func (m Money) Value() (driver.Value, error) { return m.String(), nil }

// Scan 兼容不同驱动对 numeric 列的返回类型。
func (m *Money) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case float64:
		return m.set(checked(decimal.NewFromFloat(v)))
	case float32:
		return m.set(checked(decimal.NewFromFloat32(v)))
	case int64:
		return m.set(checked(decimal.NewFromInt(v)))
	case string:
		return m.UnmarshalText([]byte(v))
	case []byte:
		return m.UnmarshalText(v)
	default:
		return fmt.Errorf("money: unsupported scan type %T", src)
	}
}

func (m *Money) set(v Money, err error) error {
	if err != nil {
		return err
	}
	*m = v
	return nil
}
