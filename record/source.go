package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound 表示数据源中没有指定 ID 的档案。
var ErrNotFound = errors.New("record: 档案不存在")

// Source 按 ID 提供员工档案。实现需可并发调用。
type Source interface {
	Get(ctx context.Context, id string) (*Employee, error)
}

// Lister 是可以列出全部档案 ID 的数据源。
type Lister interface {
	IDs(ctx context.Context) ([]string, error)
}

// MemorySource 是基于内存映射的只读数据源。
type MemorySource struct {
	records map[string]*Employee
}

// NewMemorySource 以给定档案构建数据源，ID 重复时返回错误。
func NewMemorySource(emps ...*Employee) (*MemorySource, error) {
	s := &MemorySource{records: make(map[string]*Employee, len(emps))}
	for _, e := range emps {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("record: 档案 %q 缺少 ID", e.Name)
		}
		if _, dup := s.records[id]; dup {
			return nil, fmt.Errorf("record: 档案 ID %q 重复", id)
		}
		s.records[id] = e
	}
	return s, nil
}

func (s *MemorySource) Get(ctx context.Context, id string) (*Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e, ok := s.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return e, nil
}

// IDs 按字典序返回所有档案 ID。
func (s *MemorySource) IDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// NewDirSource 读取目录下所有 .json/.yaml/.yml 档案文件。
func NewDirSource(dir string) (*MemorySource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("record: 打开档案目录失败: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("record: %s 不是目录", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS 遍历文件系统解析档案文件。每个文件可以是单个档案或档案列表。
func LoadFS(fsys fs.FS) (*MemorySource, error) {
	var all []*Employee
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isRecordFile(path) {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("record: 读取 %s 失败: %w", path, err)
		}
		emps, err := Decode(data, path)
		if err != nil {
			return err
		}
		all = append(all, emps...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return NewMemorySource(all...)
}

// Decode 解析 JSON 或 YAML 格式的档案数据，source 仅用于错误信息。
func Decode(data []byte, source string) ([]*Employee, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, fmt.Errorf("record: 文件 %s 为空", source)
	}

	var many []*Employee
	var one Employee
	switch {
	case strings.HasPrefix(trimmed, "["):
		if err := json.Unmarshal(data, &many); err != nil {
			return nil, fmt.Errorf("record: 解析 %s 失败: %w", source, err)
		}
		return many, nil
	case strings.HasPrefix(trimmed, "{"):
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("record: 解析 %s 失败: %w", source, err)
		}
		return []*Employee{&one}, nil
	}

	if err := yaml.Unmarshal(data, &many); err == nil {
		return many, nil
	}
	if err := yaml.Unmarshal(data, &one); err != nil {
		return nil, fmt.Errorf("record: 解析 %s 失败: %w", source, err)
	}
	return []*Employee{&one}, nil
}

func isRecordFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
