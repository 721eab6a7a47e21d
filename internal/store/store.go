// Package store 管理关系库：打开连接、建表（含外键约束）、整库重载与计数。
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ecomdata/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrStoreNotFound 表示 sqlite 数据库文件不存在（尚未执行加载）。
var ErrStoreNotFound = errors.New("database not found")

const batchSize = 200

// Tables 依赖顺序（父表在前）；删除时逆序。
var Tables = []string{"users", "products", "orders", "order_items", "payments"}

type Config struct {
	Driver string
	DSN    string
}

// Open 打开关系库。sqlite 会强制开启外键检查。
func Open(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "", "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.DSN))
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	return OpenDialector(dialector)
}

// OpenDialector 便于测试注入自定义连接。
func OpenDialector(d gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.New(log.New(os.Stderr, "", log.LstdFlags), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	return db, nil
}

// OpenExisting 与 Open 相同，但 sqlite 文件不存在时返回 ErrStoreNotFound 而不是新建空库。
func OpenExisting(cfg Config) (*gorm.DB, error) {
	if cfg.Driver == "" || cfg.Driver == "sqlite" {
		path := sqlitePath(cfg.DSN)
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w at %s: run ingest first", ErrStoreNotFound, path)
			}
			return nil, err
		}
	}
	return Open(cfg)
}

// Close 释放底层连接池。
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}
	return dsn + sep + "_foreign_keys=on"
}

func sqlitePath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}

// Migrate 建表；外键由模型上的 belongs-to 关联生成，可重复执行。
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	)
	if err != nil {
		return fmt.Errorf("db migrate: %w", err)
	}
	return nil
}

// TableCount 一张表的行数。
type TableCount struct {
	Table string
	Rows  int64
}

// Reload 在一个事务内清空五张表并按依赖顺序批量写入数据集。
// 任何约束错误都会回滚整个事务，库内保持原状。
func Reload(ctx context.Context, db *gorm.DB, ds model.Dataset) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := len(Tables) - 1; i >= 0; i-- {
			if err := tx.Exec("DELETE FROM " + Tables[i]).Error; err != nil {
				return fmt.Errorf("clear %s: %w", Tables[i], err)
			}
		}
		if err := insert(tx, "users", ds.Users); err != nil {
			return err
		}
		if err := insert(tx, "products", ds.Products); err != nil {
			return err
		}
		if err := insert(tx, "orders", ds.Orders); err != nil {
			return err
		}
		if err := insert(tx, "order_items", ds.OrderItems); err != nil {
			return err
		}
		return insert(tx, "payments", ds.Payments)
	})
}

func insert[T any](tx *gorm.DB, table string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Omit(clause.Associations).CreateInBatches(&rows, batchSize).Error; err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// CountRows 按 Tables 顺序返回各表行数。
func CountRows(ctx context.Context, db *gorm.DB) ([]TableCount, error) {
	out := make([]TableCount, 0, len(Tables))
	for _, table := range Tables {
		var n int64
		if err := db.WithContext(ctx).Table(table).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out = append(out, TableCount{Table: table, Rows: n})
	}
	return out, nil
}
