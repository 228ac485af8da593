package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/annel0/fabula-editor/internal/logging"
	"github.com/annel0/fabula-editor/internal/vec"
	"github.com/dgraph-io/badger/v3"
)

// ErrNotFound - запись отсутствует в базе
var ErrNotFound = errors.New("not found")

// ErrNotReady - база закрыта
var ErrNotReady = errors.New("хранилище не готово")

// SnapshotTTL - время жизни снимков автосохранения
const SnapshotTTL = 7 * 24 * time.Hour

const (
	keyStartPosition = "editor:start"
	keyRecent        = "editor:recent"
	prefixSnapshot   = "snapshot:"
)

// StartPosition - стартовая позиция игрока: карта и тайл на ней
type StartPosition struct {
	SceneUID string   `json:"scene_uid"`
	MapPath  string   `json:"map_path"`
	Tile     vec.Vec2 `json:"tile"`
}

// RecentMap - недавно открытая карта
type RecentMap struct {
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	OpenedAt time.Time `json:"opened_at"`
}

// Database - база редактора на BadgerDB: стартовая позиция,
// снимки автосохранения, список недавних карт
type Database struct {
	db          *badger.DB
	dbPath      string
	mutex       sync.RWMutex
	isReady     bool
	recentLimit int
	logger      *logging.Logger
}

// NewDatabase открывает базу в каталоге <dataPath>/editor
func NewDatabase(dataPath string, recentLimit int) (*Database, error) {
	dbPath := filepath.Join(dataPath, "editor")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB
	return openDatabase(opts, dbPath, recentLimit)
}

// NewMemoryDatabase открывает базу в памяти, для тестов
func NewMemoryDatabase(recentLimit int) (*Database, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openDatabase(opts, "", recentLimit)
}

func openDatabase(opts badger.Options, dbPath string, recentLimit int) (*Database, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}

	d := &Database{
		db:          db,
		dbPath:      dbPath,
		isReady:     true,
		recentLimit: recentLimit,
		logger:      logging.For(logging.ComponentStorage),
	}
	d.logger.Info("База редактора открыта: %s", dbPath)
	return d, nil
}

// Close закрывает базу
func (d *Database) Close() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if !d.isReady {
		return nil
	}

	d.isReady = false
	return d.db.Close()
}

// SetPlayerStartPosition сохраняет стартовую позицию
func (d *Database) SetPlayerStartPosition(pos StartPosition) error {
	return d.putJSON(keyStartPosition, pos)
}

// PlayerStartPosition возвращает стартовую позицию или ErrNotFound
func (d *Database) PlayerStartPosition() (StartPosition, error) {
	var pos StartPosition
	err := d.getJSON(keyStartPosition, &pos)
	return pos, err
}

// ClearPlayerStartPosition удаляет стартовую позицию
func (d *Database) ClearPlayerStartPosition() error {
	return d.delete(keyStartPosition)
}

// SaveSnapshot сохраняет снимок сцены для восстановления после сбоя
func (d *Database) SaveSnapshot(sceneUID string, data []byte) error {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if !d.isReady {
		return ErrNotReady
	}

	err := d.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(prefixSnapshot+sceneUID), data).WithTTL(SnapshotTTL)
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения снимка в BadgerDB: %w", err)
	}

	d.logger.Debug("Снимок %s сохранен (%d байт)", sceneUID, len(data))
	return nil
}

// LoadSnapshot возвращает снимок сцены или ErrNotFound
func (d *Database) LoadSnapshot(sceneUID string) ([]byte, error) {
	return d.get(prefixSnapshot + sceneUID)
}

// DeleteSnapshot удаляет снимок (после успешного сохранения в файл)
func (d *Database) DeleteSnapshot(sceneUID string) error {
	return d.delete(prefixSnapshot + sceneUID)
}

// TouchRecent поднимает карту в начало списка недавних
func (d *Database) TouchRecent(path, name string) error {
	recent, err := d.RecentMaps()
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	list := make([]RecentMap, 0, len(recent)+1)
	list = append(list, RecentMap{Path: path, Name: name, OpenedAt: time.Now().UTC()})
	for _, r := range recent {
		if r.Path != path {
			list = append(list, r)
		}
	}
	if len(list) > d.recentLimit {
		list = list[:d.recentLimit]
	}
	return d.putJSON(keyRecent, list)
}

// RecentMaps возвращает недавние карты, самая свежая первой
func (d *Database) RecentMaps() ([]RecentMap, error) {
	var list []RecentMap
	if err := d.getJSON(keyRecent, &list); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (d *Database) putJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("ошибка сериализации %s: %w", key, err)
	}

	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if !d.isReady {
		return ErrNotReady
	}

	err = d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}
	return nil
}

func (d *Database) getJSON(key string, v interface{}) error {
	data, err := d.get(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("ошибка десериализации %s: %w", key, err)
	}
	return nil
}

func (d *Database) get(key string) ([]byte, error) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if !d.isReady {
		return nil, ErrNotReady
	}

	var data []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}
	return data, nil
}

func (d *Database) delete(key string) error {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	if !d.isReady {
		return ErrNotReady
	}

	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
