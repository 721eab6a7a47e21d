package queue

import (
	"fmt"
	"time"
)

// TableRows 单表行数。
type TableRows struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// LoadEvent 是一次加载成功后写入 Kafka 的事件。
type LoadEvent struct {
	LoadID    string      `json:"load_id"`
	DatasetID string      `json:"dataset_id,omitempty"` // 来自 manifest 的 run_id，可能为空
	LoadedAt  time.Time   `json:"loaded_at"`
	Counts    []TableRows `json:"counts"`
}

// Validate 做最小字段校验，防止消费者处理脏消息。
func (e LoadEvent) Validate() error {
	if e.LoadID == "" {
		return fmt.Errorf("load_id is required")
	}
	if e.LoadedAt.IsZero() {
		return fmt.Errorf("loaded_at is required")
	}
	if len(e.Counts) == 0 {
		return fmt.Errorf("counts are required")
	}
	for _, c := range e.Counts {
		if c.Table == "" {
			return fmt.Errorf("counts: table is required")
		}
		if c.Rows < 0 {
			return fmt.Errorf("counts: %s rows must be >= 0", c.Table)
		}
	}
	return nil
}
