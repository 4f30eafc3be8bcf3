package ui

import (
	"fyne.io/fyne/v2/app"

	"rasterpad/internal/editor"
)

// AppID fyne 应用标识
const AppID = "io.rasterpad.app"

// Run 创建应用和编辑器窗口，阻塞直到窗口关闭
func Run(ed *editor.Editor, title string) {
	a := app.NewWithID(AppID)
	w := NewWindow(a, ed, title)
	w.ShowAndRun()
}
