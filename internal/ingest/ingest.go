// Package ingest 把导出目录整体重载进关系库：先完整解析文件，再在单个事务内清空并写入。
package ingest

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"ecomdata/internal/export"
	"ecomdata/internal/model"
	"ecomdata/internal/queue"
	"ecomdata/internal/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier 发布加载完成事件（Kafka producer 实现）。
type Notifier interface {
	Publish(ctx context.Context, ev queue.LoadEvent) error
}

// Invalidator 使报表缓存失效（Redis 实现）。
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

type Loader struct {
	DB       *gorm.DB
	Notifier Notifier    // 可为 nil
	Cache    Invalidator // 可为 nil
	Now      func() time.Time
}

// Result 一次成功加载的结果。
type Result struct {
	LoadID    string
	DatasetID string
	Counts    []store.TableCount
}

// Input 已完整解析、尚未写库的导出目录。
type Input struct {
	Dataset  model.Dataset
	Manifest export.Manifest
	// HasManifest 为 false 表示目录中没有 manifest.json
	HasManifest bool
}

// ReadInput 解析 dir 下的全部导出文件，不触碰关系库。
// 调用方应在打开（可能新建）库之前调用，保证输入缺失时不留下任何状态。
func ReadInput(dir string) (Input, error) {
	ds, err := export.ReadCSV(dir)
	if err != nil {
		return Input{}, err
	}
	manifest, found, err := export.ReadManifest(dir)
	if err != nil {
		return Input{}, err
	}
	return Input{Dataset: ds, Manifest: manifest, HasManifest: found}, nil
}

// Run 读取 dir 下的导出文件并重载关系库。
// 目录或文件缺失、行格式错误时在修改库之前返回；写库失败整体回滚。
func (l *Loader) Run(ctx context.Context, dir string) (Result, error) {
	in, err := ReadInput(dir)
	if err != nil {
		return Result{}, err
	}
	return l.Load(ctx, in)
}

// Load 建表并在单个事务内用 in 替换全部数据。
func (l *Loader) Load(ctx context.Context, in Input) (Result, error) {
	if err := store.Migrate(ctx, l.DB); err != nil {
		return Result{}, err
	}
	if err := store.Reload(ctx, l.DB, in.Dataset); err != nil {
		return Result{}, fmt.Errorf("reload: %w", err)
	}
	counts, err := store.CountRows(ctx, l.DB)
	if err != nil {
		return Result{}, err
	}

	res := Result{LoadID: uuid.New().String(), Counts: counts}
	if in.HasManifest {
		res.DatasetID = in.Manifest.RunID
	}
	l.afterCommit(ctx, res)
	return res, nil
}

// afterCommit 数据已提交，这里的失败只记录日志，不影响加载结果。
func (l *Loader) afterCommit(ctx context.Context, res Result) {
	if l.Cache != nil {
		if err := l.Cache.Invalidate(ctx); err != nil {
			log.Printf("ingest: invalidate report cache: %v", err)
		}
	}
	if l.Notifier != nil {
		if err := l.Notifier.Publish(ctx, l.event(res)); err != nil {
			log.Printf("ingest: publish load event %s: %v", res.LoadID, err)
		}
	}
}

func (l *Loader) event(res Result) queue.LoadEvent {
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}
	counts := make([]queue.TableRows, 0, len(res.Counts))
	for _, c := range res.Counts {
		counts = append(counts, queue.TableRows{Table: c.Table, Rows: c.Rows})
	}
	return queue.LoadEvent{
		LoadID:    res.LoadID,
		DatasetID: res.DatasetID,
		LoadedAt:  now().UTC(),
		Counts:    counts,
	}
}

// PrintCounts 输出各表行数。
func PrintCounts(w io.Writer, counts []store.TableCount) error {
	if _, err := fmt.Fprintln(w, "Rows inserted:"); err != nil {
		return err
	}
	for _, c := range counts {
		if _, err := fmt.Fprintf(w, "  %s: %d\n", c.Table, c.Rows); err != nil {
			return err
		}
	}
	return nil
}
