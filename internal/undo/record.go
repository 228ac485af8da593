package undo

import (
	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/vec"
)

// Change - изменение одного тайла: состояние до и после
type Change struct {
	Pos    vec.Vec2
	Before terrain.TileState
	After  terrain.TileState
}

// Record - атомарная обратимая правка (одно применение кисти).
// После создания не изменяется.
type Record struct {
	label   string
	changes []Change
}

// NewRecord создает запись, копируя список изменений
func NewRecord(label string, changes []Change) *Record {
	cp := make([]Change, len(changes))
	copy(cp, changes)
	return &Record{label: label, changes: cp}
}

// Label возвращает подпись правки (имя кисти)
func (r *Record) Label() string { return r.label }

// Len возвращает количество измененных тайлов
func (r *Record) Len() int { return len(r.changes) }

// Empty возвращает true, если запись ничего не меняет
func (r *Record) Empty() bool { return r == nil || len(r.changes) == 0 }

// Changes возвращает копию изменений
func (r *Record) Changes() []Change {
	cp := make([]Change, len(r.changes))
	copy(cp, r.changes)
	return cp
}
