package service

import "fmt"

// FieldVariant 内联编辑控件类型
type FieldVariant string

const (
	FieldVariantText     FieldVariant = "text"
	FieldVariantTextarea FieldVariant = "textarea"
	FieldVariantSelect   FieldVariant = "select"
)

// FieldState 内联编辑状态
type FieldState string

const (
	FieldStateDisplay FieldState = "display"
	FieldStateEditing FieldState = "editing"
)

// EditField 单值内联编辑会话。
// display -> (点击) -> editing -> (失焦/回车提交 | Esc取消) -> display。
// 提交回调是唯一的对外副作用，持久化由调用方的回调完成。
type EditField struct {
	variant FieldVariant
	options []string
	enabled bool

	state FieldState
	value string // 最近一次提交成功的值
	draft string

	save func(string) error
}

// NewEditField 创建内联编辑会话
func NewEditField(variant FieldVariant, value string, enabled bool, save func(string) error) *EditField {
	return &EditField{
		variant: variant,
		enabled: enabled,
		state:   FieldStateDisplay,
		value:   value,
		save:    save,
	}
}

// WithOptions 设置select类型的取值集合
func (f *EditField) WithOptions(options []string) *EditField {
	f.options = options
	return f
}

// State 当前状态
func (f *EditField) State() FieldState {
	return f.state
}

// Value 最近一次提交的值
func (f *EditField) Value() string {
	return f.value
}

// Draft 编辑中的草稿值
func (f *EditField) Draft() string {
	return f.draft
}

// BeginEdit 进入编辑态，未启用编辑时不生效
func (f *EditField) BeginEdit() bool {
	if !f.enabled || f.state == FieldStateEditing {
		return false
	}
	f.draft = f.value
	f.state = FieldStateEditing
	return true
}

// SetDraft 修改草稿；select类型只接受集合内取值
func (f *EditField) SetDraft(v string) error {
	if f.state != FieldStateEditing {
		return fmt.Errorf("当前不在编辑态")
	}
	if f.variant == FieldVariantSelect {
		valid := false
		for _, opt := range f.options {
			if opt == v {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("取值 %q 不在可选集合中", v)
		}
	}
	f.draft = v
	return nil
}

// PressEnter 回车提交；多行文本的回车用于换行，不提交
func (f *EditField) PressEnter() error {
	if f.state != FieldStateEditing || f.variant == FieldVariantTextarea {
		return nil
	}
	return f.commit()
}

// Blur 失焦提交，对所有控件类型生效
func (f *EditField) Blur() error {
	if f.state != FieldStateEditing {
		return nil
	}
	return f.commit()
}

// PressEscape 取消编辑，丢弃草稿并恢复最近提交的值，不触发保存回调
func (f *EditField) PressEscape() {
	if f.state != FieldStateEditing {
		return
	}
	f.draft = ""
	f.state = FieldStateDisplay
}

// commit 提交草稿：保存回调成功后才更新展示值
func (f *EditField) commit() error {
	draft := f.draft
	f.state = FieldStateDisplay
	f.draft = ""

	if f.save != nil {
		if err := f.save(draft); err != nil {
			return err
		}
	}

	f.value = draft
	return nil
}
