// Package scene связывает карту с метаданными сцены и хранит ее в файлах .red
package scene

import (
	"fmt"
	"path/filepath"

	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/google/uuid"
)

// FileExt - расширение файлов сцен
const FileExt = "red"

// DefaultMapsDir - каталог карт по умолчанию
const DefaultMapsDir = "maps"

// Scene - именованная карта с уникальным идентификатором, освещением
// и шейдером финального прохода
type Scene struct {
	uid         string
	name        string
	grid        *terrain.Grid
	mapsDir     string
	lights      Lights
	finalShader string
	disposed    bool
}

// New создает пустую сцену с новым UUID, заполненную отладочным покрытием
func New(name string, width, height, sectorSize int) (*Scene, error) {
	grid, err := terrain.NewGrid(width, height, sectorSize)
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	grid.FillWithDefault()
	return newScene(uuid.NewString(), name, grid), nil
}

func newScene(uid, name string, grid *terrain.Grid) *Scene {
	grid.BuildAll()
	return &Scene{
		uid:         uid,
		name:        name,
		grid:        grid,
		mapsDir:     DefaultMapsDir,
		lights:      DefaultLights(),
		finalShader: DefaultFinalShader,
	}
}

func (s *Scene) UID() string { return s.uid }

func (s *Scene) Name() string { return s.name }

func (s *Scene) SetName(name string) { s.name = name }

// HasName возвращает false для еще не сохраненной безымянной сцены
func (s *Scene) HasName() bool { return s.name != "" }

func (s *Scene) Grid() *terrain.Grid { return s.grid }

func (s *Scene) MapsDir() string { return s.mapsDir }

func (s *Scene) SetMapsDir(dir string) { s.mapsDir = dir }

func (s *Scene) Lights() Lights { return s.lights }

func (s *Scene) SetLights(l Lights) { s.lights = l }

func (s *Scene) FinalShader() string { return s.finalShader }

// SetFinalShader задает шейдер финального прохода. Пустое имя - шейдер по умолчанию.
func (s *Scene) SetFinalShader(name string) {
	if name == "" {
		name = DefaultFinalShader
	}
	s.finalShader = name
}

// Path возвращает каноничный путь сцены: <maps>/<name>.red.
// У безымянной сцены пути нет.
func (s *Scene) Path() string {
	if !s.HasName() {
		return ""
	}
	return PathFor(s.mapsDir, s.name)
}

// PathFor строит путь файла сцены по имени
func PathFor(mapsDir, name string) string {
	return filepath.Join(mapsDir, name+"."+FileExt)
}

// Dispose освобождает ресурсы отрисовки. Повторный вызов безопасен.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.grid.Sectors().Release()
}

func (s *Scene) Disposed() bool { return s.disposed }
