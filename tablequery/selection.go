package tablequery

// Selection 行选择状态。选中集由调用方持有并传入，
// 表格本身只按主键判定某行是否选中；全选/清空由调用方触发。
type Selection[T any] struct {
	key  func(T) string
	keys map[string]bool
}

// NewSelection 创建行选择状态
func NewSelection[T any](key func(T) string) *Selection[T] {
	return &Selection[T]{
		key:  key,
		keys: make(map[string]bool),
	}
}

// Toggle 翻转某行的选中状态
func (s *Selection[T]) Toggle(item T) {
	k := s.key(item)
	if s.keys[k] {
		delete(s.keys, k)
		return
	}
	s.keys[k] = true
}

// AddKey 按主键直接选中某行，用于从请求参数恢复选择状态
func (s *Selection[T]) AddKey(k string) {
	s.keys[k] = true
}

// Contains 判定某行是否选中
func (s *Selection[T]) Contains(item T) bool {
	return s.keys[s.key(item)]
}

// SelectAll 全选给定行集
func (s *Selection[T]) SelectAll(items []T) {
	for _, item := range items {
		s.keys[s.key(item)] = true
	}
}

// Clear 清空选择
func (s *Selection[T]) Clear() {
	s.keys = make(map[string]bool)
}

// Count 选中条数
func (s *Selection[T]) Count() int {
	return len(s.keys)
}

// Selected 从行集中取出选中的子集，顺序与行集一致
func (s *Selection[T]) Selected(items []T) []T {
	out := make([]T, 0, len(s.keys))
	for _, item := range items {
		if s.keys[s.key(item)] {
			out = append(out, item)
		}
	}
	return out
}

// Keys 选中的主键集合
func (s *Selection[T]) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	return out
}
