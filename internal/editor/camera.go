package editor

import "github.com/annel0/fabula-editor/internal/vec"

// DefaultCameraHeight - высота камеры над картой
const DefaultCameraHeight = 17

// TopDownCamera - ортогональная камера, смотрящая строго вниз
type TopDownCamera struct {
	Center         vec.Vec2Float // Точка карты в центре экрана (X, Z)
	Height         float64
	ViewportWidth  float64
	ViewportHeight float64
	PixelsPerTile  float64
}

// NewTopDownCamera создает камеру для окна заданного размера
func NewTopDownCamera(viewportWidth, viewportHeight, pixelsPerTile float64) *TopDownCamera {
	if pixelsPerTile <= 0 {
		pixelsPerTile = 32
	}
	return &TopDownCamera{
		Height:         DefaultCameraHeight,
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
		PixelsPerTile:  pixelsPerTile,
	}
}

// LookAt центрирует камеру на точке карты
func (c *TopDownCamera) LookAt(x, z float64) {
	c.Center = vec.Vec2Float{X: x, Y: z}
}

// ResetOver ставит камеру на исходную высоту над центром карты
func (c *TopDownCamera) ResetOver(columns, rows int) {
	c.Height = DefaultCameraHeight
	c.LookAt(float64(columns)/2, float64(rows)/2)
}

// Resize меняет размер окна
func (c *TopDownCamera) Resize(width, height float64) {
	c.ViewportWidth = width
	c.ViewportHeight = height
}

// Unproject переводит экранную точку в координаты карты
func (c *TopDownCamera) Unproject(x, y float64) vec.Vec2Float {
	offset := vec.Vec2Float{X: x - c.ViewportWidth/2, Y: y - c.ViewportHeight/2}
	return c.Center.Add(offset.Mul(1 / c.PixelsPerTile))
}

// PickRay возвращает вертикальный луч вниз через экранную точку
func (c *TopDownCamera) PickRay(x, y float64) vec.Ray {
	p := c.Unproject(x, y)
	return vec.Ray{
		Origin:    vec.Vec3Float{X: p.X, Y: c.Height, Z: p.Y},
		Direction: vec.Vec3Float{X: 0, Y: -1, Z: 0},
	}
}
