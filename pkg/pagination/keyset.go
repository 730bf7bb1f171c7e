package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 游标分隔符, base64 前的原始格式为 "<RFC3339Nano 时间>|<行ID>"
const cursorDelimiter = "|"

// Cursor keyset 游标, 由最后一行的 (created_at, id) 构成
type Cursor struct {
	CreatedAt time.Time
	ID        uint
}

// Encode 编码游标为 base64 字符串
func (c Cursor) Encode() string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorDelimiter + strconv.FormatUint(uint64(c.ID), 10)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor 解码 base64 游标, 非法游标返回 nil（回退到第一页）
func DecodeCursor(cursor string) *Cursor {
	if cursor == "" {
		return nil
	}

	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil
	}

	parts := strings.SplitN(string(raw), cursorDelimiter, 2)
	if len(parts) != 2 {
		return nil
	}

	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return nil
	}

	id, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return nil
	}

	return &Cursor{CreatedAt: createdAt, ID: uint(id)}
}

// Keyset keyset 分页器
// asc=false: 按 (created_at DESC, id DESC) 分页, 游标之后使用 '<' 比较
// asc=true:  按 (created_at ASC,  id ASC)  分页, 游标之后使用 '>' 比较
type Keyset struct {
	Asc bool
}

// Scope 返回应用游标过滤和排序的 gorm scope
// column 为时间列名（通常是 created_at）, 表前缀由调用方自带
// id 列沿用 column 的表前缀, 避免 JOIN 下的歧义
func (k Keyset) Scope(column string, cursor string) func(*gorm.DB) *gorm.DB {
	decoded := DecodeCursor(cursor)

	idColumn := "id"
	if i := strings.LastIndex(column, "."); i >= 0 {
		idColumn = column[:i] + ".id"
	}

	return func(db *gorm.DB) *gorm.DB {
		op := "<"
		dir := "DESC"
		if k.Asc {
			op = ">"
			dir = "ASC"
		}

		if decoded != nil {
			cond := fmt.Sprintf("(%s %s ? OR (%s = ? AND %s %s ?))", column, op, column, idColumn, op)
			db = db.Where(cond, decoded.CreatedAt, decoded.CreatedAt, decoded.ID)
		}

		return db.Order(fmt.Sprintf("%s %s, %s %s", column, dir, idColumn, dir))
	}
}

// Page keyset 分页响应的分页信息
type Page struct {
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
	NextCursor *string `json:"next_cursor"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	Count      int     `json:"count"`
}

// BuildPage 根据查询结果构建分页信息
// hasNext 由调用方多查一行判断; last 为本页最后一行的游标（无下一页时可为零值）
func BuildPage(limit int, count int, hasNext bool, last Cursor, prevCursor string) Page {
	page := Page{
		HasNext: hasNext,
		HasPrev: prevCursor != "",
		Limit:   limit,
		Count:   count,
	}

	if hasNext {
		next := last.Encode()
		page.NextCursor = &next
	}
	if prevCursor != "" {
		page.PrevCursor = &prevCursor
	}

	return page
}
