// Package generate 生成自洽的电商样例数据：外键总能解析，订单金额等于明细之和。
package generate

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"ecomdata/internal/model"
	"ecomdata/internal/money"
)

var (
	// ErrInvalidCounts 表示请求的实体数量不合法（配置错误）。
	ErrInvalidCounts = errors.New("invalid counts")
	// ErrSampleTooLarge 表示不放回抽样的数量超过了商品总数。
	ErrSampleTooLarge = errors.New("sample size exceeds product population")
)

const (
	day = 24 * time.Hour

	signupWindowStart = 365 * day
	signupWindowEnd   = 10 * day
	orderWindowStart  = 120 * day
	orderWindowEnd    = 1 * day

	minPriceCents = 20_00
	maxPriceCents = 1200_00
	minStock      = 20
	maxStock      = 400
	maxQuantity   = 3
)

// Counts 各实体的目标数量。
type Counts struct {
	Users    int `json:"users"`
	Products int `json:"products"`
	Orders   int `json:"orders"`
}

// DefaultCounts 与命令行默认值一致。
var DefaultCounts = Counts{Users: 25, Products: 15, Orders: 40}

func (c Counts) Validate() error {
	if c.Users < 1 {
		return fmt.Errorf("%w: users must be >= 1, got %d", ErrInvalidCounts, c.Users)
	}
	if c.Products < 1 {
		return fmt.Errorf("%w: products must be >= 1, got %d", ErrInvalidCounts, c.Products)
	}
	if c.Orders < 1 {
		return fmt.Errorf("%w: orders must be >= 1, got %d", ErrInvalidCounts, c.Orders)
	}
	return nil
}

// NewSource 由种子构造确定性的随机源。
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator 持有显式传入的随机源与时钟，同样的输入产生同样的数据集。
type Generator struct {
	rng *rand.Rand
	now time.Time
}

func New(rng *rand.Rand, now time.Time) *Generator {
	return &Generator{rng: rng, now: now.UTC().Truncate(time.Second)}
}

// Generate 依次生成用户、商品、订单（含明细与支付）。
func (g *Generator) Generate(c Counts) (model.Dataset, error) {
	if err := c.Validate(); err != nil {
		return model.Dataset{}, err
	}
	users := g.Users(c.Users)
	products := g.Products(c.Products)
	orders, items, payments, err := g.Orders(users, products, c.Orders)
	if err != nil {
		return model.Dataset{}, err
	}
	return model.Dataset{
		Users:      users,
		Products:   products,
		Orders:     orders,
		OrderItems: items,
		Payments:   payments,
	}, nil
}

func (g *Generator) Users(n int) []model.User {
	users := make([]model.User, 0, n)
	for id := 1; id <= n; id++ {
		first := pick(g.rng, firstNames)
		last := pick(g.rng, lastNames)
		phone := fmt.Sprintf("555-%d-%d", between(g.rng, 200, 999), between(g.rng, 1000, 9999))
		created := g.instant(g.now.Add(-signupWindowStart), g.now.Add(-signupWindowEnd))
		users = append(users, model.User{
			UserID:    id,
			Name:      first + " " + last,
			Email:     strings.ToLower(fmt.Sprintf("%s.%s%d@example.com", first, last, id)),
			Phone:     phone,
			CreatedAt: model.NewDate(created),
		})
	}
	return users
}

func (g *Generator) Products(n int) []model.Product {
	products := make([]model.Product, 0, n)
	for id := 1; id <= n; id++ {
		name := pick(g.rng, productAdjectives) + " " + pick(g.rng, productNouns)
		products = append(products, model.Product{
			ProductID: id,
			Name:      name,
			Category:  pick(g.rng, categories),
			Price:     money.FromCents(int64(between(g.rng, minPriceCents, maxPriceCents))),
			Stock:     between(g.rng, minStock, maxStock),
		})
	}
	return products
}

// Orders 为每个订单抽取用户、下单时间、1..4 个不重复商品及数量，
// 并生成唯一一条金额相同的支付记录。
func (g *Generator) Orders(users []model.User, products []model.Product, n int) ([]model.Order, []model.OrderItem, []model.Payment, error) {
	if len(users) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: orders need at least one user", ErrInvalidCounts)
	}
	if len(products) == 0 {
		return nil, nil, nil, fmt.Errorf("%w: orders need at least one product", ErrInvalidCounts)
	}

	orders := make([]model.Order, 0, n)
	items := make([]model.OrderItem, 0, n*2)
	payments := make([]model.Payment, 0, n)

	nextItemID := 1
	for id := 1; id <= n; id++ {
		user := users[g.rng.IntN(len(users))]
		orderDate := model.NewTimestamp(g.instant(g.now.Add(-orderWindowStart), g.now.Add(-orderWindowEnd)))

		k := between(g.rng, 1, min(model.MaxItemsPerOrder, len(products)))
		chosen, err := SampleProducts(g.rng, products, k)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("order %d: %w", id, err)
		}

		lines := make([]money.Money, 0, len(chosen))
		for _, p := range chosen {
			qty := between(g.rng, 1, maxQuantity)
			item := model.OrderItem{
				OrderItemID: nextItemID,
				OrderID:     id,
				ProductID:   p.ProductID,
				Quantity:    qty,
				UnitPrice:   p.Price,
			}
			lines = append(lines, item.LineTotal())
			items = append(items, item)
			nextItemID++
		}
		total := money.OrderTotal(lines...)

		orders = append(orders, model.Order{
			OrderID:     id,
			UserID:      user.UserID,
			OrderDate:   orderDate,
			TotalAmount: total,
		})

		status := g.status()
		method := pick(g.rng, model.PaymentMethods)
		delay := time.Duration(between(g.rng, 1, 48)) * time.Hour
		payments = append(payments, model.Payment{
			PaymentID: id,
			OrderID:   id,
			Amount:    total,
			Method:    method,
			Status:    status,
			PaidAt:    orderDate.Add(delay),
		})
	}
	return orders, items, payments, nil
}

// SampleProducts 不放回地均匀抽取 k 个商品，保持抽中顺序。
// k 超出范围时返回错误，不做截断。
func SampleProducts(rng *rand.Rand, products []model.Product, k int) ([]model.Product, error) {
	if k < 1 || k > len(products) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrSampleTooLarge, k, len(products))
	}
	pool := make([]model.Product, len(products))
	copy(pool, products)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}

type weighted struct {
	status model.PaymentStatus
	weight float64
}

// statusWeights 是固定策略，与订单内容无关。
var statusWeights = []weighted{
	{model.StatusCompleted, 0.82},
	{model.StatusPending, 0.12},
	{model.StatusFailed, 0.06},
}

func (g *Generator) status() model.PaymentStatus {
	var total float64
	for _, w := range statusWeights {
		total += w.weight
	}
	x := g.rng.Float64() * total
	for _, w := range statusWeights {
		if x < w.weight {
			return w.status
		}
		x -= w.weight
	}
	return statusWeights[len(statusWeights)-1].status
}

// instant 在 [start, end] 内按秒均匀取值。
func (g *Generator) instant(start, end time.Time) time.Time {
	span := int64(end.Sub(start) / time.Second)
	return start.Add(time.Duration(g.rng.Int64N(span+1)) * time.Second)
}

func between(rng *rand.Rand, lo, hi int) int { return lo + rng.IntN(hi-lo+1) }

func pick[T any](rng *rand.Rand, xs []T) T { return xs[rng.IntN(len(xs))] }
