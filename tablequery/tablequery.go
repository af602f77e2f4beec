// Package tablequery 提供表格化列表的内存处理管线：
// 过滤 -> 排序 -> 分页，全部在已取回的数据集上进行。
// 列表接口先取回完整的用户数据集，再经此管线得到页数据，
// 适用于数百行量级的数据集。
package tablequery

import (
	"sort"
	"strings"
	"time"
)

// ColumnKind 列类型，封闭枚举，过滤分支按类型穷举
type ColumnKind string

const (
	ColumnKindText   ColumnKind = "text"
	ColumnKindSelect ColumnKind = "select"
	ColumnKindDate   ColumnKind = "date"
)

// Column 列描述符
type Column[T any] struct {
	Header   string
	Field    string
	Kind     ColumnKind
	Sortable bool
	Width    int

	// Value 从行中取出该列的值；返回nil视为缺失
	Value func(T) interface{}

	// Options 仅select列使用，取值的封闭集合
	Options []string
}

// Direction 排序方向
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState 单列排序状态
type SortState struct {
	Field     string
	Direction Direction
}

// Toggle 点击列头后的新排序状态：
// 换列时回到升序，同列时翻转方向；一旦排过序就不会回到未排序。
func (s SortState) Toggle(field string) SortState {
	if s.Field != field {
		return SortState{Field: field, Direction: Ascending}
	}
	if s.Direction == Ascending {
		return SortState{Field: field, Direction: Descending}
	}
	return SortState{Field: field, Direction: Ascending}
}

// Active 是否已有排序列
func (s SortState) Active() bool {
	return s.Field != ""
}

// Compare 通用比较：-1小于，0等于，1大于。
// 任一侧缺失时视为相等，保证稳定排序下缺失值不移动。
func Compare(a, b interface{}) int {
	if a == nil || b == nil {
		return 0
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		return strings.Compare(av, bv)
	case int:
		bv, ok := b.(int)
		if !ok {
			return 0
		}
		return compareOrdered(av, bv)
	case int64:
		bv, ok := b.(int64)
		if !ok {
			return 0
		}
		return compareOrdered(av, bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0
		}
		return compareOrdered(av, bv)
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return 0
		}
		if av.Before(bv) {
			return -1
		}
		if av.After(bv) {
			return 1
		}
		return 0
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return 0
		}
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	}

	return 0
}

func compareOrdered[N int | int64 | float64](a, b N) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// FilterSpec 按列过滤条件
type FilterSpec struct {
	Field string
	Value string
}

// Table 一个实体集合的表格定义
type Table[T any] struct {
	Columns []Column[T]

	// Key 行主键访问器，行选择按主键判定归属
	Key func(T) string
}

// column 按字段名查列
func (t *Table[T]) column(field string) *Column[T] {
	for i := range t.Columns {
		if t.Columns[i].Field == field {
			return &t.Columns[i]
		}
	}
	return nil
}

// Filter 按列类型过滤，分支对ColumnKind穷举
func (t *Table[T]) Filter(items []T, specs []FilterSpec) []T {
	if len(specs) == 0 {
		return items
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		matched := true
		for _, spec := range specs {
			if spec.Value == "" {
				continue
			}
			col := t.column(spec.Field)
			if col == nil || col.Value == nil {
				continue
			}
			if !matchColumn(col.Kind, col.Value(item), spec.Value) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, item)
		}
	}
	return out
}

// matchColumn 单列匹配判定
func matchColumn(kind ColumnKind, cell interface{}, want string) bool {
	switch kind {
	case ColumnKindText:
		s, _ := cell.(string)
		return strings.Contains(strings.ToLower(s), strings.ToLower(want))
	case ColumnKindSelect:
		s, _ := cell.(string)
		return s == want
	case ColumnKindDate:
		ts, ok := cell.(time.Time)
		if !ok {
			return false
		}
		// 按天匹配
		return ts.Format("2006-01-02") == want
	}
	return false
}

// Sort 按排序状态稳定排序，返回新切片
func (t *Table[T]) Sort(items []T, state SortState) []T {
	if !state.Active() {
		return items
	}
	col := t.column(state.Field)
	if col == nil || !col.Sortable || col.Value == nil {
		return items
	}

	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		cmp := Compare(col.Value(sorted[i]), col.Value(sorted[j]))
		if state.Direction == Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	return sorted
}

// Paginate 对已排序的数据分页，返回页数据与总条数
func Paginate[T any](items []T, page, limit int) ([]T, int) {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	start := (page - 1) * limit
	if start >= total {
		return []T{}, total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], total
}

// Result 管线输出
type Result[T any] struct {
	Items []T
	Total int
	Page  int
	Limit int
}

// Apply 完整管线：过滤 -> 排序 -> 分页
func (t *Table[T]) Apply(items []T, specs []FilterSpec, state SortState, page, limit int) Result[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	filtered := t.Filter(items, specs)
	sorted := t.Sort(filtered, state)
	pageItems, total := Paginate(sorted, page, limit)
	return Result[T]{
		Items: pageItems,
		Total: total,
		Page:  page,
		Limit: limit,
	}
}
