package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/annel0/fabula-editor/internal/logging"
)

// ErrNoPath - у сцены нет имени, и путь сохранения не задан
var ErrNoPath = errors.New("scene has no path")

// LoadError - файл сцены отсутствует, поврежден или другой версии
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load scene %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SaveError - ошибка ввода-вывода при сохранении. Сцена в памяти не меняется.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save scene %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// Open читает сцену из файла. Каталог файла становится каталогом карт сцены.
func Open(path string, sectorSize int) (*Scene, error) {
	logger := logging.For(logging.ComponentScene)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %v", ErrMissing, err)
		}
		return nil, &LoadError{Path: path, Err: err}
	}

	s, err := Decode(data, sectorSize)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	s.SetMapsDir(filepath.Dir(path))

	logger.Info("Открыта сцена %q (%s) %dx%d из %s", s.Name(), s.UID(), s.Grid().Width(), s.Grid().Height(), path)
	return s, nil
}

// Save записывает сцену по пути path, пустой path означает s.Path().
// Файл пишется во временный файл рядом и атомарно подменяет каноничный,
// поэтому при ошибке старое содержимое остается на месте.
func Save(s *Scene, path string) error {
	logger := logging.For(logging.ComponentScene)
	if path == "" {
		path = s.Path()
	}
	if path == "" {
		return &SaveError{Err: ErrNoPath}
	}

	start := time.Now()
	data, err := Encode(s)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	if err := writeAtomic(path, data); err != nil {
		return &SaveError{Path: path, Err: err}
	}

	logger.Info("Сцена %q сохранена за %v (%d байт)", s.Name(), time.Since(start), len(data))
	return nil
}

// Save сохраняет сцену по ее каноничному пути
func (s *Scene) Save() error {
	return Save(s, "")
}

func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
