package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/segmentio/kafka-go"
)

// Handler 处理一条已校验的加载事件。
type Handler func(ctx context.Context, ev LoadEvent) error

// Consumer 订阅加载事件，例如在新数据入库后预热报表缓存。
type Consumer struct {
	r      *kafka.Reader
	handle Handler
}

func NewConsumer(brokers []string, topic, groupID string, handle Handler) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1,
			MaxBytes: 1e6,
		}),
		handle: handle,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancel / 连接断开等
		}
		if err := c.process(ctx, m.Value); err != nil {
			log.Printf("consumer offset=%d: %v", m.Offset, err)
		}
	}
}

// process 解码并分发；脏消息只记录日志，不阻塞后续消息。
func (c *Consumer) process(ctx context.Context, value []byte) error {
	var ev LoadEvent
	if err := json.Unmarshal(value, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := ev.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}
	return c.handle(ctx, ev)
}
