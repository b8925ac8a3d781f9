package rng

// Номера потоков для DeriveSeed.
const (
	StreamGameplay uint32 = 0
	StreamFlavor   uint32 = 1
)

// DeriveSeed смешивает сид сессии с координатой чанка и номером потока.
// Результат стабилен между сборками и платформами и входит в версионируемый формат.
func DeriveSeed(seed uint32, x, y int32, stream uint32) uint32 {
	h := seed
	h ^= uint32(x) * 0x9e3779b1
	h = hash32(h)
	h ^= uint32(y) * 0x85ebca6b
	h = hash32(h)
	h ^= stream * 0xc2b2ae35
	return hash32(h)
}

// hash32 — финализатор с хорошей лавинностью.
func hash32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}
