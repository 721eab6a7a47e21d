package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const ManifestName = "manifest.json"

// Manifest 记录一次生成的元信息，加载阶段用 RunID 关联事件。
type Manifest struct {
	RunID       string    `json:"run_id"`
	Seed        uint64    `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
	Users       int       `json:"users"`
	Products    int       `json:"products"`
	Orders      int       `json:"orders"`
	OrderItems  int       `json:"order_items"`
	Payments    int       `json:"payments"`
}

// NewRunID 生成一次运行的唯一标识。
func NewRunID() string { return uuid.New().String() }

func WriteManifest(dir string, m Manifest) error {
	if m.RunID == "" {
		m.RunID = NewRunID()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return writeJSONFile(filepath.Join(dir, ManifestName), m)
}

// ReadManifest 读取 manifest；文件不存在时 found=false。
func ReadManifest(dir string) (Manifest, bool, error) {
	b, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Manifest{}, false, nil
		}
		return Manifest{}, false, err
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, false, fmt.Errorf("%w: %s: %v", ErrMalformed, ManifestName, err)
	}
	if _, err := uuid.Parse(m.RunID); err != nil {
		return Manifest{}, false, fmt.Errorf("%w: %s run_id: %v", ErrMalformed, ManifestName, err)
	}
	return m, true, nil
}
