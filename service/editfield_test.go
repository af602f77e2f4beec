package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEditFieldEscapeDiscardsDraft(t *testing.T) {
	saves := 0
	f := NewEditField(FieldVariantText, "Acme Corp", true, func(v string) error {
		saves++
		return nil
	})

	require.True(t, f.BeginEdit())
	require.NoError(t, f.SetDraft("Acme Corp Inc"))

	f.PressEscape()

	// Esc丢弃草稿，展示值不变，保存回调未被触发
	assert.Equal(t, FieldStateDisplay, f.State())
	assert.Equal(t, "Acme Corp", f.Value())
	assert.Equal(t, 0, saves)
}

func TestEditFieldEnterCommitsOnce(t *testing.T) {
	var saved []string
	f := NewEditField(FieldVariantText, "Acme Corp", true, func(v string) error {
		saved = append(saved, v)
		return nil
	})

	require.True(t, f.BeginEdit())
	require.NoError(t, f.SetDraft("Acme Corp Inc"))
	require.NoError(t, f.PressEnter())

	assert.Equal(t, FieldStateDisplay, f.State())
	assert.Equal(t, "Acme Corp Inc", f.Value())
	assert.Equal(t, []string{"Acme Corp Inc"}, saved)

	// 已在展示态，回车不再提交
	require.NoError(t, f.PressEnter())
	assert.Len(t, saved, 1)
}

func TestEditFieldTextareaEnterDoesNotCommit(t *testing.T) {
	saves := 0
	f := NewEditField(FieldVariantTextarea, "第一段", true, func(v string) error {
		saves++
		return nil
	})

	require.True(t, f.BeginEdit())
	require.NoError(t, f.SetDraft("第一段\n第二段"))

	// 多行文本的回车用于换行
	require.NoError(t, f.PressEnter())
	assert.Equal(t, FieldStateEditing, f.State())
	assert.Equal(t, 0, saves)

	// 失焦提交
	require.NoError(t, f.Blur())
	assert.Equal(t, "第一段\n第二段", f.Value())
	assert.Equal(t, 1, saves)
}

func TestEditFieldSelectRejectsUnknownOption(t *testing.T) {
	f := NewEditField(FieldVariantSelect, "new", true, nil).
		WithOptions([]string{"new", "contacted", "qualified"})

	require.True(t, f.BeginEdit())
	assert.Error(t, f.SetDraft("archived"))
	require.NoError(t, f.SetDraft("contacted"))
	require.NoError(t, f.PressEnter())
	assert.Equal(t, "contacted", f.Value())
}

func TestEditFieldSaveFailureKeepsOldValue(t *testing.T) {
	f := NewEditField(FieldVariantText, "原值", true, func(v string) error {
		return errors.New("保存失败")
	})

	require.True(t, f.BeginEdit())
	require.NoError(t, f.SetDraft("新值"))

	// 保存失败时展示值不更新
	assert.Error(t, f.Blur())
	assert.Equal(t, "原值", f.Value())
	assert.Equal(t, FieldStateDisplay, f.State())
}

func TestEditFieldDisabled(t *testing.T) {
	f := NewEditField(FieldVariantText, "只读", false, nil)
	assert.False(t, f.BeginEdit())
	assert.Equal(t, FieldStateDisplay, f.State())
}
