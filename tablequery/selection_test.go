package tablequery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	rows := []row{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	sel := NewSelection(func(r row) string { return r.ID })

	assert.Equal(t, 0, sel.Count())

	sel.Toggle(rows[0])
	sel.Toggle(rows[2])
	assert.Equal(t, 2, sel.Count())
	assert.True(t, sel.Contains(rows[0]))
	assert.False(t, sel.Contains(rows[1]))

	// 再次翻转取消选中
	sel.Toggle(rows[0])
	assert.False(t, sel.Contains(rows[0]))

	sel.SelectAll(rows)
	assert.Equal(t, 3, sel.Count())

	// 选中子集保持行集顺序
	picked := sel.Selected(rows)
	assert.Equal(t, []string{"1", "2", "3"}, []string{picked[0].ID, picked[1].ID, picked[2].ID})

	sel.Clear()
	assert.Equal(t, 0, sel.Count())

	// 按主键恢复选择
	sel.AddKey("2")
	picked = sel.Selected(rows)
	assert.Len(t, picked, 1)
	assert.Equal(t, "2", picked[0].ID)
}
