package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// HeightNoise - параметры генерации рельефа для новой карты
type HeightNoise struct {
	Seed      int64   // Сид шума, 0 - плоская карта
	Scale     float64 // Масштаб шума (сглаженность рельефа)
	Amplitude float64 // Максимальная высота
}

// heightStep - шаг квантования высот, чтобы рельеф складывался в ступени
const heightStep = 0.5

// GenerateHeights задает высоты всех тайлов по шуму Перлина.
// Вызывается при создании карты, до начала редактирования: в историю правок не попадает.
func GenerateHeights(g *Grid, n HeightNoise) {
	if n.Seed == 0 || n.Amplitude <= 0 {
		return
	}
	scale := n.Scale
	if scale <= 0 {
		scale = 0.05
	}

	noise := perlin.NewPerlin(2.0, 2.0, 3, n.Seed)
	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			// Шум в диапазоне [-1,1] переводим в [0,1]
			v := (noise.Noise2D(float64(col)*scale, float64(row)*scale) + 1.0) / 2.0
			h := math.Round(v*n.Amplitude/heightStep) * heightStep
			g.tiles[row*g.width+col].Height = float32(h)
		}
	}
	g.sectors.MarkAllDirty()
}
