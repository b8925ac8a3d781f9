package domain

// Параметры мира
const (
	DefaultChunkSize = 32
	DefaultWorldSize = 1 << 30
)

// Параметры восприятия
const (
	VisionRadius = 8
	AggroRadius  = 5
	// ActiveRadius — монстры дальше этого расстояния от игрока не ходят.
	ActiveRadius = 16
)

// Параметры игрока
const (
	PlayerStartWill     = 2
	PlayerMaxWill       = 5
	PlayerStartMind     = 20
	PlayerMaxMind       = 100
	PlayerMinMind       = -100
	WithdrawalPerTurn   = 1
	ExplosionRadius     = 4
	StrongExplosionSize = 3
)

// Directions — восемь направлений в каноническом порядке (N, NE, E, SE, S, SW, W, NW).
var Directions = []Point{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}
