package utils

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/google/uuid"
)

// RandomSeed возвращает случайный сид для новой игровой сессии.
// Детерминизм начинается после выбора сида, поэтому здесь нужен настоящий источник энтропии.
func RandomSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic("failed to generate random seed: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])
}

// NewSessionID создаёт идентификатор сессии для логов и наблюдателей.
func NewSessionID() string {
	return uuid.NewString()
}
