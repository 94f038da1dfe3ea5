package systems

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// fovResult собирает видимые клетки без повторов, сохраняя порядок обхода.
type fovResult struct {
	m     *domain.SpatialMap
	seen  map[int]struct{}
	tiles []domain.Position
}

func (r *fovResult) add(x, y int) {
	idx := r.m.Index(x, y)
	if _, ok := r.seen[idx]; ok {
		return
	}
	r.seen[idx] = struct{}{}
	r.tiles = append(r.tiles, domain.Position{X: x, Y: y})
}

// ComputeFOV - рекурсивный shadowcasting. Клетка видна, если dx²+dy² <= r².
// Стены видны, но перекрывают обзор за собой. Результат обрезан границами карты.
func ComputeFOV(m *domain.SpatialMap, origin domain.Position, radius int) []domain.Position {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
		"radius":       radius,
	})

	if !m.InBounds(origin.X, origin.Y) {
		fovLogger.Warn("FOV calculation skipped: observer out of bounds.")
		return nil
	}

	res := &fovResult{m: m, seen: make(map[int]struct{})}

	// Центр всегда виден
	res.add(origin.X, origin.Y)

	if radius <= 0 {
		return res.tiles
	}

	for i := 0; i < 8; i++ {
		castLight(m, origin.X, origin.Y, 1, 1.0, 0.0, radius,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], res)
	}

	fovLogger.WithField("visible_tiles", len(res.tiles)).Debug("FOV calculation complete.")
	return res.tiles
}

func castLight(m *domain.SpatialMap, cx, cy, row int, start, end float64, radius, xx, xy, yx, yy int, res *fovResult) {
	if start < end {
		return
	}

	radiusSq := radius * radius

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
			X := cx + dx*xx + dy*xy
			Y := cy + dx*yx + dy*yy

			if m.InBounds(X, Y) && dx*dx+dy*dy <= radiusSq {
				res.add(X, Y)
			}

			// Логика теней
			if blocked {
				if isOpaque(m, X, Y) {
					newStart = rSlope
					continue
				}
				blocked = false
				start = newStart
			} else if isOpaque(m, X, Y) && j < radius {
				blocked = true
				castLight(m, cx, cy, j+1, start, lSlope, radius, xx, xy, yx, yy, res)
				newStart = rSlope
			}
		}
		if blocked {
			break
		}
	}
}

// isOpaque проверяет, блокирует ли клетка взгляд. Выход за границы непрозрачен.
func isOpaque(m *domain.SpatialMap, x, y int) bool {
	if !m.InBounds(x, y) {
		return true
	}
	return m.IsOpaque(m.Index(x, y))
}
