package logging

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Component - подсистема редактора, у каждой свой логгер и свой файл
type Component string

const (
	ComponentEditor  Component = "editor"
	ComponentScene   Component = "scene"
	ComponentStorage Component = "storage"
	ComponentBrush   Component = "brush"
	ComponentUndo    Component = "undo"
)

// Registry хранит по одному логгеру на подсистему.
// Если файл лога открыть не удалось, подсистема пишет только в консоль.
type Registry struct {
	mu      sync.Mutex
	loggers map[Component]*Logger
}

var (
	registry     *Registry
	registryOnce sync.Once
)

// Components возвращает общий реестр процесса
func Components() *Registry {
	registryOnce.Do(func() {
		registry = NewRegistry()
	})
	return registry
}

// NewRegistry создает отдельный реестр (тесты, встраивание)
func NewRegistry() *Registry {
	return &Registry{loggers: make(map[Component]*Logger)}
}

// For возвращает логгер подсистемы, создавая его при первом обращении
func (r *Registry) For(c Component) *Logger {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.loggers[c]; ok {
		return l
	}
	l := openComponent(c, currentOptions())
	r.loggers[c] = l
	return l
}

func openComponent(c Component, opts Options) *Logger {
	l, err := NewLoggerWithOptions(string(c), opts)
	if err == nil {
		return l
	}
	Warn("Логгер %s без файла: %v", c, err)

	opts.ToFile = false
	if l, err = NewLoggerWithOptions(string(c), opts); err == nil {
		return l
	}
	return NewNopLogger(string(c))
}

// Lookup возвращает уже созданный логгер подсистемы
func (r *Registry) Lookup(c Component) (*Logger, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.loggers[c]
	return l, ok
}

// SetLevels меняет уровни уже созданного логгера
func (r *Registry) SetLevels(c Component, consoleLevel, fileLevel LogLevel) error {
	l, ok := r.Lookup(c)
	if !ok {
		return fmt.Errorf("логгер %s не создан", c)
	}
	l.SetLevels(consoleLevel, fileLevel)
	return nil
}

// Names возвращает подсистемы с созданными логгерами по алфавиту
func (r *Registry) Names() []Component {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]Component, 0, len(r.loggers))
	for c := range r.loggers {
		names = append(names, c)
	}
	slices.Sort(names)
	return names
}

// Close закрывает все логгеры и очищает реестр. Возвращает все ошибки закрытия.
func (r *Registry) Close() error {
	r.mu.Lock()
	loggers := r.loggers
	r.loggers = make(map[Component]*Logger)
	r.mu.Unlock()

	var errs []error
	for c, l := range loggers {
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// For - логгер подсистемы из общего реестра
func For(c Component) *Logger {
	return Components().For(c)
}
