package systems

import (
	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/pkg/logger"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Алгоритм Брезенхэма, только целочисленная арифметика. Деревья и край мира закрывают обзор,
// концы отрезка не проверяются.
func HasLineOfSight(w *domain.World, p1, p2 domain.Point) bool {
	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	dx := abs(p2.X - p1.X)
	dy := abs(p2.Y - p1.Y)
	sx, sy := sign(p2.X-p1.X), sign(p2.Y-p1.Y)
	err := dx - dy

	for {
		cur := domain.Point{X: x0, Y: y0}
		if cur != p1 && cur != p2 && isBlocking(w, cur) {
			logger.Log.WithFields(logrus.Fields{
				"component": "physics_system",
				"start_pos": p1,
				"end_pos":   p2,
				"blocked":   cur,
			}).Trace("Line of sight blocked")
			return false
		}
		if cur == p2 {
			return true
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// isBlocking — закрывает ли клетка обзор.
func isBlocking(w *domain.World, p domain.Point) bool {
	if !w.IsInBounds(p) {
		return true
	}
	return !w.TileAt(p).Kind.IsWalkable()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
