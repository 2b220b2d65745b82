// Package sqlite 把员工档案保存在 SQLite 数据库中，档案以 JSON 文本存储。
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ByLCY/dossier/record"
)

const schemaVersion = 1

const schema = `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS employees (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    data       TEXT NOT NULL,   -- JSON 编码的档案
    updated_at INTEGER NOT NULL -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_employees_name ON employees(name);
`

const upsertSQL = `
INSERT INTO employees (id, name, data, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, updated_at = excluded.updated_at`

// Store 是基于 SQLite 的档案数据源，实现 record.Source。
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open 打开（必要时创建）数据库并执行迁移。dsn 可以是文件路径或 ":memory:"。
func Open(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("sqlite: dsn 为空")
	}
	if dsn != ":memory:" && !strings.Contains(dsn, "?") {
		dsn += "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: 打开数据库失败: %w", err)
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: 连接数据库失败: %w", err)
	}
	s := &Store{db: db, now: time.Now}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate 创建表结构并记录版本号，可重复执行。
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: 创建表结构失败: %w", err)
	}
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("sqlite: 写入版本号失败: %w", err)
		}
	case err != nil:
		return fmt.Errorf("sqlite: 读取版本号失败: %w", err)
	case version > schemaVersion:
		return fmt.Errorf("sqlite: 数据库版本 %d 高于程序支持的 %d", version, schemaVersion)
	}
	return nil
}

// Put 插入或覆盖一份档案。
func (s *Store) Put(ctx context.Context, e *record.Employee) error {
	if e == nil || strings.TrimSpace(e.ID) == "" {
		return errors.New("sqlite: 档案缺少 ID")
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("sqlite: 编码档案 %s 失败: %w", e.ID, err)
	}
	_, err = s.db.ExecContext(ctx, upsertSQL,
		e.ID, e.Name, string(data), s.now().UnixNano())
	if err != nil {
		return fmt.Errorf("sqlite: 保存档案 %s 失败: %w", e.ID, err)
	}
	return nil
}

// PutAll 在一个事务中保存多份档案。
func (s *Store) PutAll(ctx context.Context, emps []*record.Employee) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: 开启事务失败: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSQL)
	if err != nil {
		return fmt.Errorf("sqlite: 准备语句失败: %w", err)
	}
	defer stmt.Close()

	ts := s.now().UnixNano()
	for _, e := range emps {
		if e == nil || strings.TrimSpace(e.ID) == "" {
			return errors.New("sqlite: 档案缺少 ID")
		}
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("sqlite: 编码档案 %s 失败: %w", e.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, e.ID, e.Name, string(data), ts); err != nil {
			return fmt.Errorf("sqlite: 保存档案 %s 失败: %w", e.ID, err)
		}
	}
	return tx.Commit()
}

// Get 按 ID 读取档案；不存在时返回包装了 record.ErrNotFound 的错误。
func (s *Store) Get(ctx context.Context, id string) (*record.Employee, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM employees WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", record.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: 读取档案 %s 失败: %w", id, err)
	}
	var e record.Employee
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return nil, fmt.Errorf("sqlite: 解码档案 %s 失败: %w", id, err)
	}
	return &e, nil
}

// IDs 按 ID 排序返回所有档案 ID。
func (s *Store) IDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM employees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: 查询档案列表失败: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Delete 删除档案，不存在时返回 record.ErrNotFound。
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: 删除档案 %s 失败: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", record.ErrNotFound, id)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
