package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"rasterpad/internal/editor"
	"rasterpad/internal/keymap"
)

// shortcutsFor 快捷键对应的窗口快捷方式
// 未包含 shift 的快捷键额外注册 shift 变体，交给编辑器按键映射判定
func shortcutsFor(b keymap.Binding) []*desktop.CustomShortcut {
	var mod fyne.KeyModifier
	if b.Ctrl {
		mod |= fyne.KeyModifierControl
	}
	if b.Alt {
		mod |= fyne.KeyModifierAlt
	}
	if b.Shift {
		mod |= fyne.KeyModifierShift
	}
	if b.Super {
		mod |= fyne.KeyModifierSuper
	}

	out := []*desktop.CustomShortcut{{KeyName: fyne.KeyName(b.Key), Modifier: mod}}
	if !b.Shift {
		out = append(out, &desktop.CustomShortcut{KeyName: fyne.KeyName(b.Key), Modifier: mod | fyne.KeyModifierShift})
	}
	return out
}

// strokeOf 快捷方式还原为按键
func strokeOf(s *desktop.CustomShortcut) keymap.Stroke {
	return keymap.Stroke{
		Key:   string(s.KeyName),
		Ctrl:  s.Modifier&fyne.KeyModifierControl != 0,
		Alt:   s.Modifier&fyne.KeyModifierAlt != 0,
		Shift: s.Modifier&fyne.KeyModifierShift != 0,
		Super: s.Modifier&fyne.KeyModifierSuper != 0,
	}
}

// standardShortcut 驱动把单独的 ctrl+Z/Y/C/V/X/A 转成标准快捷方式，不会产生 CustomShortcut
func standardShortcut(b keymap.Binding) (fyne.Shortcut, bool) {
	if !b.Ctrl || b.Alt || b.Shift || b.Super {
		return nil, false
	}
	switch fyne.KeyName(b.Key) {
	case fyne.KeyZ:
		return &fyne.ShortcutUndo{}, true
	case fyne.KeyY:
		return &fyne.ShortcutRedo{}, true
	case fyne.KeyC:
		return &fyne.ShortcutCopy{}, true
	case fyne.KeyV:
		return &fyne.ShortcutPaste{}, true
	case fyne.KeyX:
		return &fyne.ShortcutCut{}, true
	case fyne.KeyA:
		return &fyne.ShortcutSelectAll{}, true
	}
	return nil, false
}

// registerShortcuts 注册所有快捷键，按下时发送 editor.Key
func registerShortcuts(c fyne.Canvas, km *keymap.Keymap, handle func(editor.Key)) {
	for _, b := range km.Bindings() {
		for _, sc := range shortcutsFor(b) {
			stroke := strokeOf(sc)
			c.AddShortcut(sc, func(fyne.Shortcut) {
				handle(editor.Key{Stroke: stroke})
			})
		}

		if std, ok := standardShortcut(b); ok {
			stroke := keymap.Stroke{Key: b.Key, Ctrl: true}
			c.AddShortcut(std, func(fyne.Shortcut) {
				handle(editor.Key{Stroke: stroke})
			})
		}
	}
}
