// Package editor - рабочая сессия редактора: сцена, кисти, история правок
// и связь с внешними камерой, шейдером и рендером.
package editor

import (
	"github.com/annel0/fabula-editor/internal/scene"
	"github.com/annel0/fabula-editor/internal/storage"
	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/annel0/fabula-editor/internal/vec"
)

// Camera строит луч в мировых координатах из экранной точки
type Camera interface {
	PickRay(x, y float64) vec.Ray
}

// UniformSink - программа шейдера подсветки кисти
type UniformSink interface {
	SetUniformf(name string, values ...float64)
	SetUniformi(name string, value int)
}

// RenderTarget - проход рендера карты. Кадр рисуется во внеэкранный буфер
// BeginFrame .. EndFrame, затем выводится на экран финальным шейдером.
// Геометрия секторов неизменяема, ее можно хранить между кадрами.
type RenderTarget interface {
	BeginFrame(buffer string, lights scene.Lights)
	DrawSector(geometry *terrain.SectorGeometry)
	EndFrame(finalShader string)
}

// CameraResetter - камера, которую можно вернуть в исходное положение над картой
type CameraResetter interface {
	ResetOver(columns, rows int)
}

// Store - база редактора (storage.Database)
type Store interface {
	PlayerStartPosition() (storage.StartPosition, error)
	SaveSnapshot(sceneUID string, data []byte) error
	LoadSnapshot(sceneUID string) ([]byte, error)
	DeleteSnapshot(sceneUID string) error
	TouchRecent(path, name string) error
}

// Button - кнопка указателя
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
)

// Имена uniform-переменных шейдера подсветки
const (
	UniformBrushPosition      = "u_brush_position"
	UniformBrushSize          = "u_brush_size"
	UniformLayerStyle         = "layer_style"
	UniformBrushType          = "u_brush_type"
	UniformBrushStartPosition = "u_brush_start_position"
)
