package domain

import "dose-response/internal/core/types"

// EffectKind — вид визуального эффекта.
type EffectKind uint8

const (
	EffectExplosion EffectKind = iota
	EffectScreenFade
)

// ExplosionShape — форма взрыва.
type ExplosionShape uint8

const (
	ShapeSquare ExplosionShape = iota
	ShapeCardinal
	ShapeDiagonal
)

// Effect — временный эффект (анимация). Не сохраняется и не влияет на снимки состояния.
// Варианты различаются полем Kind; поля, не относящиеся к варианту, нулевые.
type Effect struct {
	Kind EffectKind

	// Explosion
	Center Point
	Radius int
	Shape  ExplosionShape

	// ScreenFade
	Color types.Color

	Duration int
	Elapsed  int
}

// NewExplosion создаёт взрыв заданной формы.
func NewExplosion(center Point, radius int, shape ExplosionShape) Effect {
	return Effect{Kind: EffectExplosion, Center: center, Radius: radius, Shape: shape, Duration: radius}
}

// NewScreenFade создаёт затемнение экрана.
func NewScreenFade(color types.Color, duration int) Effect {
	return Effect{Kind: EffectScreenFade, Color: color, Duration: duration}
}

// Affected возвращает клетки, которые задевает эффект. Центр не включается.
func (e Effect) Affected() []Point {
	switch e.Kind {
	case EffectExplosion:
		return e.explosionArea()
	default:
		return nil
	}
}

func (e Effect) explosionArea() []Point {
	var area []Point
	for dy := -e.Radius; dy <= e.Radius; dy++ {
		for dx := -e.Radius; dx <= e.Radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			hit := false
			switch e.Shape {
			case ShapeSquare:
				hit = true
			case ShapeCardinal:
				hit = dx == 0 || dy == 0
			case ShapeDiagonal:
				hit = dx == dy || dx == -dy
			}
			if hit {
				area = append(area, e.Center.Shift(dx, dy))
			}
		}
	}
	return area
}

// Advance продвигает анимацию на тик. Возвращает true, когда эффект закончился.
func (e *Effect) Advance() bool {
	e.Elapsed++
	return e.Elapsed >= e.Duration
}
