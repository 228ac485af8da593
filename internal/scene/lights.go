package scene

import "github.com/annel0/fabula-editor/internal/vec"

// MainFrameBuffer - буфер кадра, в который рисуется карта перед финальным проходом
const MainFrameBuffer = "MAIN_FRAME_BUFFER"

// DefaultFinalShader - шейдер финального прохода по умолчанию
const DefaultFinalShader = "default"

// Color - цвет RGBA, компоненты 0..1
type Color struct {
	R, G, B, A float32
}

var White = Color{R: 1, G: 1, B: 1, A: 1}

// DirectionalLight - бесконечно удаленный источник (солнце)
type DirectionalLight struct {
	Color     Color
	Direction vec.Vec3Float
}

// Lights - освещение сцены: рассеянный свет и солнце
type Lights struct {
	Ambient Color
	Sun     DirectionalLight
}

// DefaultLights - белый рассеянный свет половинной силы и солнце почти в зените
func DefaultLights() Lights {
	return Lights{
		Ambient: Color{R: 1, G: 1, B: 1, A: 0.5},
		Sun: DirectionalLight{
			Color:     White,
			Direction: vec.Vec3Float{X: -0.008, Y: -0.716, Z: -0.108},
		},
	}
}
