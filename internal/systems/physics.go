package systems

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя точками (Брезенхэм).
// Начальная и конечная клетки не проверяются.
func HasLineOfSight(m *domain.SpatialMap, p1, p2 domain.Position) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "physics_system",
		"start_pos": p1,
		"end_pos":   p2,
	})

	if p1 == p2 {
		return true
	}

	x0, y0 := p1.X, p1.Y
	x1, y1 := p2.X, p2.Y

	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)

	err := dx - dy

	for {
		isStartPoint := x0 == p1.X && y0 == p1.Y
		isEndPoint := x0 == p2.X && y0 == p2.Y

		if !isStartPoint && !isEndPoint {
			if isOpaque(m, x0, y0) {
				losLogger.WithField("blocking_point", domain.Position{X: x0, Y: y0}).
					Debug("Line of sight blocked.")
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			break
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

	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
