package domain

import "fmt"

// Point — позиция клетки в мировых координатах. Ось Y направлена вниз.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

func (p Point) Scale(k int) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Shift возвращает новую позицию со смещением.
func (p Point) Shift(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// DistanceSquaredTo возвращает квадрат расстояния (для сравнений без корней).
func (p Point) DistanceSquaredTo(o Point) int {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// ChebyshevTo — расстояние в ходах с диагоналями.
func (p Point) ChebyshevTo(o Point) int {
	return max(abs(p.X-o.X), abs(p.Y-o.Y))
}

// IsAdjacent возвращает true, если цель в соседней клетке (включая диагональ).
func (p Point) IsAdjacent(o Point) bool {
	return p.ChebyshevTo(o) == 1
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ChunkCoord — индекс чанка: мировая позиция, поделённая на размер чанка с округлением вниз.
type ChunkCoord struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// ChunkCoordOf возвращает координату чанка, которому принадлежит p.
func ChunkCoordOf(p Point, size int) ChunkCoord {
	return ChunkCoord{X: int32(floorDiv(p.X, size)), Y: int32(floorDiv(p.Y, size))}
}

// Origin — мировая позиция левого верхнего угла чанка.
func (c ChunkCoord) Origin(size int) Point {
	return Point{X: int(c.X) * size, Y: int(c.Y) * size}
}

// Less задаёт канонический порядок чанков (по X, затем по Y).
func (c ChunkCoord) Less(o ChunkCoord) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("chunk(%d, %d)", c.X, c.Y)
}

// LocalIndex возвращает индекс клетки внутри чанка (row-major).
func LocalIndex(p Point, size int) int {
	return floorMod(p.Y, size)*size + floorMod(p.X, size)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m
}
