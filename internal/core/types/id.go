package types

import (
	"fmt"
	"strconv"
)

// MonsterID — стабильный 64-битный идентификатор монстра.
//
// Идентификатор выводится из чанка рождения и порядкового номера монстра в этом чанке,
// поэтому не зависит от порядка, в котором игрок открывал чанки, и не меняется при
// перемещении монстра между чанками.
//
// Формат битов (от старших к младшим):
//
//	[ ChunkX (26) | ChunkY (26) | Index+1 (12) ]
//
// Координаты чанка хранятся в дополнительном коде. Индекс хранится со смещением на единицу,
// чтобы нулевое значение оставалось свободным для NilMonsterID.
type MonsterID uint64

// NilMonsterID — отсутствие ссылки на монстра.
const NilMonsterID MonsterID = 0

const (
	bitsIndex = 12
	bitsChunk = 26

	shiftChunkY = bitsIndex
	shiftChunkX = bitsIndex + bitsChunk

	maskIndex = (1 << bitsIndex) - 1
	maskChunk = (1 << bitsChunk) - 1

	// MaxMonstersPerChunk — сколько монстров может родиться в одном чанке.
	MaxMonstersPerChunk = maskIndex

	// MaxChunkCoord — наибольшая по модулю координата чанка, которую можно упаковать.
	MaxChunkCoord = 1<<(bitsChunk-1) - 1
)

// PackMonsterID собирает идентификатор из координаты чанка рождения и индекса.
// Паникует, если значения не помещаются в отведённые биты.
func PackMonsterID(chunkX, chunkY int32, index int) MonsterID {
	if index < 0 || index >= MaxMonstersPerChunk {
		panic(fmt.Sprintf("monster index %d out of range", index))
	}
	if !chunkCoordFits(chunkX) || !chunkCoordFits(chunkY) {
		panic(fmt.Sprintf("chunk (%d, %d) out of MonsterID range", chunkX, chunkY))
	}

	return MonsterID(
		(uint64(uint32(chunkX))&maskChunk)<<shiftChunkX |
			(uint64(uint32(chunkY))&maskChunk)<<shiftChunkY |
			uint64(index+1),
	)
}

func chunkCoordFits(c int32) bool {
	return c >= -MaxChunkCoord-1 && c <= MaxChunkCoord
}

// BirthChunk возвращает координаты чанка, в котором монстр был сгенерирован.
func (id MonsterID) BirthChunk() (int32, int32) {
	return signExtend(uint64(id) >> shiftChunkX & maskChunk), signExtend(uint64(id) >> shiftChunkY & maskChunk)
}

// Index возвращает порядковый номер монстра в чанке рождения.
func (id MonsterID) Index() int {
	return int(uint64(id)&maskIndex) - 1
}

// IsNil проверяет, является ли идентификатор нулевым.
func (id MonsterID) IsNil() bool {
	return id == NilMonsterID
}

func signExtend(v uint64) int32 {
	const shift = 32 - bitsChunk
	return int32(uint32(v)<<shift) >> shift
}

// String возвращает человекочитаемое представление (для логов).
func (id MonsterID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	x, y := id.BirthChunk()
	return fmt.Sprintf("[chunk=(%d,%d) idx=%d]", x, y, id.Index())
}

// MarshalJSON сериализует MonsterID строкой, чтобы JavaScript-клиенты не теряли точность.
func (id MonsterID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает и строковое, и числовое представление.
func (id *MonsterID) UnmarshalJSON(data []byte) error {
	s := string(data)

	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*id = NilMonsterID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return err
	}

	*id = MonsterID(v)
	return nil
}
