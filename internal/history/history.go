package history

import (
	"fmt"

	"github.com/google/uuid"
)

// Buffer 可快照的像素缓冲区
type Buffer interface {
	Size() (int, int)
	Pixels() []uint8
	Blit(src []uint8, width, height int)
	Resize(width, height int) error
}

// Snapshot 某一时刻缓冲区的完整副本，创建后不再修改
type Snapshot struct {
	ID     uuid.UUID
	Width  int
	Height int
	Pix    []uint8
}

// Bytes 快照占用的像素字节数
func (s Snapshot) Bytes() int {
	return len(s.Pix)
}

// Stack 撤销/重做快照栈
type Stack struct {
	undoStack []Snapshot // 撤销栈
	redoStack []Snapshot // 重做栈
	limit     int        // 撤销栈深度上限，<=0 表示不限
	bytes     int
}

// NewStack 创建快照栈，limit <= 0 表示不限深度
func NewStack(limit int) *Stack {
	if limit < 0 {
		limit = 0
	}
	return &Stack{
		undoStack: make([]Snapshot, 0),
		redoStack: make([]Snapshot, 0),
		limit:     limit,
	}
}

// take 复制当前缓冲区
func take(buf Buffer) Snapshot {
	w, h := buf.Size()
	pix := make([]uint8, len(buf.Pixels()))
	copy(pix, buf.Pixels())
	return Snapshot{ID: uuid.New(), Width: w, Height: h, Pix: pix}
}

// Capture 保存当前缓冲区到撤销栈，并清空重做栈
func (s *Stack) Capture(buf Buffer) Snapshot {
	snap := take(buf)
	s.pushUndo(snap)

	// 新操作后重做无效
	s.dropRedo()
	return snap
}

// PeekRestore 用栈顶快照覆盖缓冲区但不出栈，尺寸不同时只复制左上角重叠部分
func (s *Stack) PeekRestore(buf Buffer) bool {
	if len(s.undoStack) == 0 {
		return false
	}
	top := s.undoStack[len(s.undoStack)-1]
	buf.Blit(top.Pix, top.Width, top.Height)
	return true
}

// PopRestore 撤销：弹出栈顶快照并恢复，尺寸不同时先调整缓冲区尺寸
func (s *Stack) PopRestore(buf Buffer) (bool, error) {
	if len(s.undoStack) == 0 {
		return false, nil
	}

	current := take(buf)
	top := s.undoStack[len(s.undoStack)-1]
	if err := restore(buf, top); err != nil {
		return false, fmt.Errorf("撤销失败: %w", err)
	}

	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.bytes -= top.Bytes()
	s.redoStack = append(s.redoStack, current)
	s.bytes += current.Bytes()
	return true, nil
}

// Redo 重做上一步撤销
func (s *Stack) Redo(buf Buffer) (bool, error) {
	if len(s.redoStack) == 0 {
		return false, nil
	}

	current := take(buf)
	next := s.redoStack[len(s.redoStack)-1]
	if err := restore(buf, next); err != nil {
		return false, fmt.Errorf("重做失败: %w", err)
	}

	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.bytes -= next.Bytes()
	s.pushUndo(current)
	return true, nil
}

func restore(buf Buffer, snap Snapshot) error {
	w, h := buf.Size()
	if w != snap.Width || h != snap.Height {
		if err := buf.Resize(snap.Width, snap.Height); err != nil {
			return err
		}
	}
	buf.Blit(snap.Pix, snap.Width, snap.Height)
	return nil
}

func (s *Stack) pushUndo(snap Snapshot) {
	s.undoStack = append(s.undoStack, snap)
	s.bytes += snap.Bytes()
	if s.limit > 0 && len(s.undoStack) > s.limit {
		s.bytes -= s.undoStack[0].Bytes()
		s.undoStack[0] = Snapshot{}
		s.undoStack = s.undoStack[1:]
	}
}

func (s *Stack) dropRedo() {
	for _, snap := range s.redoStack {
		s.bytes -= snap.Bytes()
	}
	clear(s.redoStack)
	s.redoStack = s.redoStack[:0]
}

// Top 栈顶快照
func (s *Stack) Top() (Snapshot, bool) {
	if len(s.undoStack) == 0 {
		return Snapshot{}, false
	}
	return s.undoStack[len(s.undoStack)-1], true
}

// Len 撤销栈深度
func (s *Stack) Len() int { return len(s.undoStack) }

// RedoLen 重做栈深度
func (s *Stack) RedoLen() int { return len(s.redoStack) }

// CanUndo 是否可以撤销
func (s *Stack) CanUndo() bool { return len(s.undoStack) > 0 }

// CanRedo 是否可以重做
func (s *Stack) CanRedo() bool { return len(s.redoStack) > 0 }

// Bytes 两个栈持有的像素字节总数
func (s *Stack) Bytes() int { return s.bytes }

// Limit 深度上限
func (s *Stack) Limit() int { return s.limit }
