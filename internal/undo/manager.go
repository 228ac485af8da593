package undo

import (
	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/terrain"
)

// DefaultLimit - рекомендуемая глубина ограниченной истории.
// По умолчанию история не ограничена (limit <= 0).
const DefaultLimit = 100

// TileWriter - приемник записей тайлов (terrain.Grid)
type TileWriter interface {
	Set(col, row int, state terrain.TileState) (terrain.TileState, error)
}

// Op - тип операции истории
type Op int

const (
	OpRecord Op = iota
	OpUndo
	OpRedo
)

func (o Op) String() string {
	switch o {
	case OpRecord:
		return "record"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// Observer получает уведомления об операциях истории (метрики, статус)
type Observer func(op Op, r *Record)

// Manager - линейная история правок: стек undo и стек redo.
// Все записи одной правки применяются до возврата управления,
// поэтому цикл рендера никогда не видит частично отмененную правку.
type Manager struct {
	writer   TileWriter
	undo     []*Record
	redo     []*Record
	limit    int
	observer Observer
	logger   *logging.Logger
}

// NewManager создает историю для карты. limit <= 0 - история без ограничения.
func NewManager(writer TileWriter, limit int) *Manager {
	if limit < 0 {
		limit = 0
	}
	return &Manager{
		writer: writer,
		limit:  limit,
		logger: logging.For(logging.ComponentUndo),
	}
}

// SetObserver задает наблюдателя
func (m *Manager) SetObserver(o Observer) {
	m.observer = o
}

// Record кладет правку в стек undo и очищает redo. Пустые правки игнорируются.
func (m *Manager) Record(r *Record) {
	if r.Empty() {
		return
	}

	if m.limit > 0 && len(m.undo) >= m.limit {
		// Самая старая правка выпадает из истории
		m.undo[0] = nil
		m.undo = m.undo[1:]
	}
	m.undo = append(m.undo, r)
	clear(m.redo)
	m.redo = m.redo[:0]

	m.logger.Trace("Запись %q: %d тайлов", r.Label(), r.Len())
	m.notify(OpRecord, r)
}

// Undo отменяет последнюю правку. Пустой стек - не ошибка, возвращает false.
func (m *Manager) Undo() bool {
	if len(m.undo) == 0 {
		return false
	}

	r := m.undo[len(m.undo)-1]
	m.undo[len(m.undo)-1] = nil
	m.undo = m.undo[:len(m.undo)-1]

	// Обратный порядок: при повторяющихся позициях восстанавливается самое раннее состояние
	for i := len(r.changes) - 1; i >= 0; i-- {
		c := r.changes[i]
		if _, err := m.writer.Set(c.Pos.X, c.Pos.Y, c.Before); err != nil {
			m.logger.Error("Ошибка отмены тайла %v: %v", c.Pos, err)
		}
	}

	m.redo = append(m.redo, r)
	m.logger.Debug("Отменено %q: %d тайлов", r.Label(), r.Len())
	m.notify(OpUndo, r)
	return true
}

// Redo повторяет последнюю отмененную правку. Пустой стек - не ошибка, возвращает false.
func (m *Manager) Redo() bool {
	if len(m.redo) == 0 {
		return false
	}

	r := m.redo[len(m.redo)-1]
	m.redo[len(m.redo)-1] = nil
	m.redo = m.redo[:len(m.redo)-1]

	for _, c := range r.changes {
		if _, err := m.writer.Set(c.Pos.X, c.Pos.Y, c.After); err != nil {
			m.logger.Error("Ошибка повтора тайла %v: %v", c.Pos, err)
		}
	}

	m.undo = append(m.undo, r)
	m.logger.Debug("Повторено %q: %d тайлов", r.Label(), r.Len())
	m.notify(OpRedo, r)
	return true
}

// CanUndo возвращает true, если есть что отменять
func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }

// CanRedo возвращает true, если есть что повторять
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Limit возвращает глубину истории, 0 - без ограничения
func (m *Manager) Limit() int { return m.limit }

// UndoLen возвращает глубину стека undo
func (m *Manager) UndoLen() int { return len(m.undo) }

// RedoLen возвращает глубину стека redo
func (m *Manager) RedoLen() int { return len(m.redo) }

// Clear очищает историю (при смене сцены)
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}

func (m *Manager) notify(op Op, r *Record) {
	if m.observer != nil {
		m.observer(op, r)
	}
}
