package model

import "ecomdata/internal/money"

// Product 商品：价格为两位定点金额，库存非负。
type Product struct {
	ProductID int         `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Name      string      `gorm:"size:128;not null" json:"name"`
	Category  string      `gorm:"size:64" json:"category"`
	Price     money.Money `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock     int         `gorm:"not null;default:0" json:"stock"`
}

func (Product) TableName() string { return "products" }
