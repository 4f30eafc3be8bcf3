package keymap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyBinding 快捷键为空或缺少主键
var ErrEmptyBinding = errors.New("快捷键缺少主键")

// Action 快捷键触发的动作
type Action string

const (
	ActionUndo Action = "undo" // 撤销
	ActionRedo Action = "redo" // 重做
)

// Stroke 一次按键（主键 + 修饰键状态）
type Stroke struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
}

// Binding 快捷键定义
type Binding struct {
	Key   string // 规范化后的主键名
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
}

// Parse 解析 "ctrl+z"、"ctrl+shift+z" 形式的快捷键
func Parse(s string) (Binding, error) {
	var b Binding
	parts := strings.Split(s, "+")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i < len(parts)-1 {
			if err := b.setModifier(part); err != nil {
				return Binding{}, err
			}
			continue
		}
		if part == "" {
			return Binding{}, fmt.Errorf("%w: %q", ErrEmptyBinding, s)
		}
		key, err := parseKey(part)
		if err != nil {
			return Binding{}, err
		}
		b.Key = key
	}
	return b, nil
}

// MustParse 解析失败时 panic，仅用于内置默认值
func MustParse(s string) Binding {
	b, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return b
}

// setModifier 解析修饰键
func (b *Binding) setModifier(mod string) error {
	switch strings.ToLower(mod) {
	case "ctrl", "control":
		b.Ctrl = true
	case "alt", "option":
		b.Alt = true
	case "shift":
		b.Shift = true
	case "win", "cmd", "command", "super":
		b.Super = true
	default:
		return fmt.Errorf("未知修饰键: %q", mod)
	}
	return nil
}

// parseKey 解析主键，返回规范名称
func parseKey(key string) (string, error) {
	upper := strings.ToUpper(key)

	// 字母键、数字键
	if len(upper) == 1 && (upper[0] >= 'A' && upper[0] <= 'Z' || upper[0] >= '0' && upper[0] <= '9') {
		return upper, nil
	}

	// 功能键
	for i := 1; i <= 12; i++ {
		if upper == fmt.Sprintf("F%d", i) {
			return upper, nil
		}
	}

	switch upper {
	case "SPACE":
		return "Space", nil
	case "RETURN", "ENTER":
		return "Return", nil
	case "ESCAPE", "ESC":
		return "Escape", nil
	case "TAB":
		return "Tab", nil
	case "DELETE", "DEL":
		return "Delete", nil
	case "BACKSPACE":
		return "BackSpace", nil
	case "UP":
		return "Up", nil
	case "DOWN":
		return "Down", nil
	case "LEFT":
		return "Left", nil
	case "RIGHT":
		return "Right", nil
	}
	return "", fmt.Errorf("不支持的主键: %q", key)
}

// String 规范的文本形式，可被 Parse 解析
func (b Binding) String() string {
	var parts []string
	if b.Ctrl {
		parts = append(parts, "ctrl")
	}
	if b.Alt {
		parts = append(parts, "alt")
	}
	if b.Shift {
		parts = append(parts, "shift")
	}
	if b.Super {
		parts = append(parts, "super")
	}
	parts = append(parts, strings.ToLower(b.Key))
	return strings.Join(parts, "+")
}

// Exact 按键与快捷键完全一致
func (b Binding) Exact(s Stroke) bool {
	return b.Matches(s) && b.Shift == s.Shift
}

// Matches 按键是否触发快捷键
// 快捷键未包含 shift 时忽略 shift 状态（ctrl+shift+z 同样触发 ctrl+z）
func (b Binding) Matches(s Stroke) bool {
	if b.Key == "" || !strings.EqualFold(b.Key, s.Key) {
		return false
	}
	if b.Ctrl != s.Ctrl || b.Alt != s.Alt || b.Super != s.Super {
		return false
	}
	return !b.Shift || s.Shift
}

// Keymap 动作到快捷键的映射
type Keymap struct {
	bindings map[Action]Binding
}

// Default 默认快捷键：ctrl+z 撤销，ctrl+y 重做
func Default() *Keymap {
	return &Keymap{bindings: map[Action]Binding{
		ActionUndo: MustParse("ctrl+z"),
		ActionRedo: MustParse("ctrl+y"),
	}}
}

// New 由文本定义创建映射
func New(defs map[Action]string) (*Keymap, error) {
	km := &Keymap{bindings: make(map[Action]Binding, len(defs))}
	for action, def := range defs {
		b, err := Parse(def)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", action, err)
		}
		km.bindings[action] = b
	}
	return km, nil
}

// Binding 获取动作的快捷键
func (k *Keymap) Binding(a Action) (Binding, bool) {
	b, ok := k.bindings[a]
	return b, ok
}

// Lookup 查找按键对应的动作，完全一致的快捷键优先
func (k *Keymap) Lookup(s Stroke) (Action, bool) {
	var loose Action
	found := false
	for _, a := range k.actions() {
		b := k.bindings[a]
		if b.Exact(s) {
			return a, true
		}
		if !found && b.Matches(s) {
			loose, found = a, true
		}
	}
	return loose, found
}

// actions 固定顺序遍历，保证结果稳定
func (k *Keymap) actions() []Action {
	out := make([]Action, 0, len(k.bindings))
	for _, a := range []Action{ActionUndo, ActionRedo} {
		if _, ok := k.bindings[a]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Bindings 所有快捷键（副本）
func (k *Keymap) Bindings() map[Action]Binding {
	out := make(map[Action]Binding, len(k.bindings))
	for a, b := range k.bindings {
		out[a] = b
	}
	return out
}
