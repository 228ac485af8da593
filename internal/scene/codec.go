package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/annel0/fabula-editor/internal/terrain"
	"github.com/klauspost/compress/zstd"
	"google.golang.org/protobuf/encoding/protowire"
)

// Формат файла: "FRED", байт версии, далее сжатое zstd сообщение protowire
const (
	FormatVersion byte = 1
	magic              = "FRED"
	headerLen          = len(magic) + 1

	// Ограничения на размер карты при чтении, чтобы битый файл не съел память
	MaxDimension = 8192
	MaxTiles     = 4 << 20
)

// Поля сообщения сцены
const (
	fieldUID    protowire.Number = 1
	fieldName   protowire.Number = 2
	fieldWidth  protowire.Number = 3
	fieldHeight protowire.Number = 4
	fieldTile   protowire.Number = 5
)

// Поля сообщения тайла
const (
	tileCol      protowire.Number = 1
	tileRow      protowire.Number = 2
	tileHeight   protowire.Number = 3
	tileTerrain  protowire.Number = 4
	tilePassable protowire.Number = 5
	tileLiquid   protowire.Number = 6
	tileFoliage  protowire.Number = 7
	tileEvent    protowire.Number = 8
	tileAutoTile protowire.Number = 9
)

var (
	ErrMissing = errors.New("scene file missing")
	ErrCorrupt = errors.New("scene file corrupt")
	ErrVersion = errors.New("scene file version mismatch")
)

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func initCodec() error {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(256<<20))
	})
	return codecErr
}

// Encode сериализует сцену. Пишутся только тайлы, отличные от состояния по умолчанию.
func Encode(s *Scene) ([]byte, error) {
	if err := initCodec(); err != nil {
		return nil, err
	}

	g := s.Grid()
	var msg []byte
	msg = protowire.AppendTag(msg, fieldUID, protowire.BytesType)
	msg = protowire.AppendString(msg, s.UID())
	msg = protowire.AppendTag(msg, fieldName, protowire.BytesType)
	msg = protowire.AppendString(msg, s.Name())
	msg = protowire.AppendTag(msg, fieldWidth, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(g.Width()))
	msg = protowire.AppendTag(msg, fieldHeight, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(g.Height()))

	def := terrain.DefaultState()
	var tile []byte
	g.Each(func(t terrain.Tile) {
		if t.State() == def {
			return
		}
		tile = appendTile(tile[:0], t)
		msg = protowire.AppendTag(msg, fieldTile, protowire.BytesType)
		msg = protowire.AppendBytes(msg, tile)
	})

	out := make([]byte, 0, headerLen+len(msg)/2)
	out = append(out, magic...)
	out = append(out, FormatVersion)
	return encoder.EncodeAll(msg, out), nil
}

func appendTile(b []byte, t terrain.Tile) []byte {
	appendVarint := func(num protowire.Number, v uint64) {
		if v == 0 {
			return
		}
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, v)
	}

	appendVarint(tileCol, uint64(t.Col))
	appendVarint(tileRow, uint64(t.Row))
	if t.Height != 0 {
		b = protowire.AppendTag(b, tileHeight, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, math.Float32bits(t.Height))
	}
	appendVarint(tileTerrain, uint64(t.Terrain))
	appendVarint(tilePassable, uint64(t.Passable))
	appendVarint(tileLiquid, uint64(t.Liquid))
	appendVarint(tileFoliage, uint64(t.Foliage))
	appendVarint(tileEvent, uint64(t.Event))
	appendVarint(tileAutoTile, uint64(t.AutoTile))
	return b
}

// Decode восстанавливает сцену из байтов Encode.
// Ошибки оборачивают ErrCorrupt или ErrVersion.
func Decode(data []byte, sectorSize int) (*Scene, error) {
	if err := initCodec(); err != nil {
		return nil, err
	}

	if len(data) < headerLen || !bytes.Equal(data[:len(magic)], []byte(magic)) {
		return nil, fmt.Errorf("%w: bad header", ErrCorrupt)
	}
	if v := data[len(magic)]; v != FormatVersion {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersion, v, FormatVersion)
	}

	msg, err := decoder.DecodeAll(data[headerLen:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var (
		uid, name     string
		width, height uint64
		tiles         []terrain.Tile
	)
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, protowire.ParseError(n))
		}
		msg = msg[n:]

		switch {
		case num == fieldUID && typ == protowire.BytesType:
			uid, n = protowire.ConsumeString(msg)
		case num == fieldName && typ == protowire.BytesType:
			name, n = protowire.ConsumeString(msg)
		case num == fieldWidth && typ == protowire.VarintType:
			width, n = protowire.ConsumeVarint(msg)
		case num == fieldHeight && typ == protowire.VarintType:
			height, n = protowire.ConsumeVarint(msg)
		case num == fieldTile && typ == protowire.BytesType:
			var raw []byte
			raw, n = protowire.ConsumeBytes(msg)
			if n >= 0 {
				t, terr := decodeTile(raw)
				if terr != nil {
					return nil, terr
				}
				tiles = append(tiles, t)
			}
		default:
			// Неизвестные поля пропускаются
			n = protowire.ConsumeFieldValue(num, typ, msg)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		msg = msg[n:]
	}

	if uid == "" {
		return nil, fmt.Errorf("%w: missing uuid", ErrCorrupt)
	}
	if width == 0 || height == 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: bad size %dx%d", ErrCorrupt, width, height)
	}
	if width*height > MaxTiles {
		return nil, fmt.Errorf("%w: too many tiles %dx%d", ErrCorrupt, width, height)
	}

	grid, err := terrain.NewGrid(int(width), int(height), sectorSize)
	if err != nil {
		return nil, err
	}
	grid.FillWithDefault()
	for _, t := range tiles {
		if _, err := grid.Set(t.Col, t.Row, t.State()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	return newScene(uid, name, grid), nil
}

func decodeTile(b []byte) (terrain.Tile, error) {
	var t terrain.Tile
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return t, fmt.Errorf("%w: tile: %v", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		if num == tileHeight && typ == protowire.Fixed32Type {
			var bits uint32
			bits, n = protowire.ConsumeFixed32(b)
			t.Height = math.Float32frombits(bits)
		} else if typ == protowire.VarintType {
			var v uint64
			v, n = protowire.ConsumeVarint(b)
			switch num {
			case tileCol:
				t.Col = int(v)
			case tileRow:
				t.Row = int(v)
			case tileTerrain:
				t.Terrain = terrain.TerrainID(v)
			case tilePassable:
				t.Passable = terrain.Passability(v) & terrain.PassableAll
			case tileLiquid:
				t.Liquid = terrain.LiquidID(v)
			case tileFoliage:
				t.Foliage = terrain.FoliageID(v)
			case tileEvent:
				t.Event = terrain.EventID(v)
			case tileAutoTile:
				t.AutoTile = terrain.AutoTileVariant(v)
			}
		} else {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return t, fmt.Errorf("%w: tile field %d: %v", ErrCorrupt, num, protowire.ParseError(n))
		}
		b = b[n:]
	}
	return t, nil
}
