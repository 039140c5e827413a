package database

import (
	"context"

	"gorm.io/gorm"
)

// Row 一行查询结果，列名到值
type Row map[string]interface{}

// Executor 执行带命名参数（@name）的只读查询，按结果顺序返回行
type Executor struct {
	DB *gorm.DB
}

func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{DB: db}
}

func (e *Executor) Query(ctx context.Context, query string, params map[string]interface{}) ([]Row, error) {
	tx := e.DB.WithContext(ctx)
	if len(params) > 0 {
		tx = tx.Raw(query, params)
	} else {
		tx = tx.Raw(query)
	}

	rows, err := tx.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			// MySQL 驱动对文本和 DECIMAL 返回 []byte
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Ping 检查连接池是否可用
func (e *Executor) Ping(ctx context.Context) error {
	sqlDB, err := e.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
