package systems

import (
	"slices"

	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/pkg/logger"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeFOV возвращает видимые из origin клетки в порядке строк (y, затем x).
//
// Перед расчётом создаются все чанки, пересекающие квадрат радиуса: набор чанков мира
// после хода зависит только от позиции игрока, а не от того, куда дотянулись лучи.
func ComputeFOV(w *domain.World, origin domain.Point, radius int) []domain.Point {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
		"radius":       radius,
	})

	if radius <= 0 {
		fovLogger.Warn("FOV calculation skipped for blind observer (radius <= 0).")
		return nil
	}

	MaterializeArea(w, origin, radius)

	visible := map[domain.Point]struct{}{origin: {}}

	// Рекурсивный Shadowcasting для 8 октантов
	for i := 0; i < 8; i++ {
		castLight(w, origin, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], visible)
	}

	out := make([]domain.Point, 0, len(visible))
	for p := range visible {
		out = append(out, p)
	}
	slices.SortFunc(out, comparePoints)

	fovLogger.WithField("visible_tiles", len(out)).Trace("FOV calculation complete.")
	return out
}

// MaterializeArea создаёт все чанки, пересекающие квадрат радиуса radius вокруг center.
func MaterializeArea(w *domain.World, center domain.Point, radius int) {
	size := w.ChunkSize()
	lo := domain.ChunkCoordOf(center.Shift(-radius, -radius), size)
	hi := domain.ChunkCoordOf(center.Shift(radius, radius), size)
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			coord := domain.ChunkCoord{X: cx, Y: cy}
			o := coord.Origin(size)
			if w.IsInBounds(o) || w.IsInBounds(o.Shift(size-1, size-1)) {
				w.Chunk(coord)
			}
		}
	}
}

func castLight(w *domain.World, origin domain.Point, row int, start, end float64, radius, xx, xy, yx, yy int, visible map[domain.Point]struct{}) {
	if start < end {
		return
	}

	radiusSq := float64(radius * radius)

	for j := row; j <= radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			p := domain.Point{
				X: origin.X + dx*xx + dy*xy,
				Y: origin.Y + dx*yx + dy*yy,
			}

			if w.IsInBounds(p) && float64(dx*dx+dy*dy) < radiusSq {
				visible[p] = struct{}{}
			}

			// Логика теней
			if blocked {
				if isBlocking(w, p) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if isBlocking(w, p) && j < radius {
				blocked = true
				castLight(w, origin, j+1, start, lSlope, radius, xx, xy, yx, yy, visible)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

func comparePoints(a, b domain.Point) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
