package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04:05"
)

// Date 是只保留日期部分的时间，落盘与入库都使用 DateLayout 文本。
type Date struct{ t time.Time }

func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) Time() time.Time { return d.t }
func (d Date) IsZero() bool    { return d.t.IsZero() }
func (d Date) String() string  { return d.t.Format(DateLayout) }

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Date) UnmarshalText(b []byte) error {
	v, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d Date) Value() (driver.Value, error) { return d.String(), nil }

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	case time.Time:
		*d = NewDate(v)
		return nil
	default:
		return fmt.Errorf("date: unsupported scan type %T", src)
	}
}

// Timestamp 精确到秒，格式为 TimestampLayout（UTC）。
type Timestamp struct{ t time.Time }

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Second)}
}

func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return Timestamp{t: t}, nil
}

func (ts Timestamp) Time() time.Time { return ts.t }
func (ts Timestamp) IsZero() bool    { return ts.t.IsZero() }
func (ts Timestamp) String() string  { return ts.t.Format(TimestampLayout) }

func (ts Timestamp) Add(d time.Duration) Timestamp { return Timestamp{t: ts.t.Add(d)} }

func (ts Timestamp) Sub(o Timestamp) time.Duration { return ts.t.Sub(o.t) }

func (ts Timestamp) MarshalText() ([]byte, error) { return []byte(ts.String()), nil }

func (ts *Timestamp) UnmarshalText(b []byte) error {
	v, err := ParseTimestamp(string(b))
	if err != nil {
		return err
	}
	*ts = v
	return nil
}

func (ts Timestamp) Value() (driver.Value, error) { return ts.String(), nil }

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return ts.UnmarshalText([]byte(v))
	case []byte:
		return ts.UnmarshalText(v)
	case time.Time:
		*ts = NewTimestamp(v)
		return nil
	default:
		return fmt.Errorf("timestamp: unsupported scan type %T", src)
	}
}
