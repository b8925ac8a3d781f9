// Package rng реализует детерминированный генератор случайных чисел.
//
// Одинаковый сид даёт одинаковую последовательность на любой платформе и в любой сборке:
// от этого зависят реплеи, сохранения и генерация мира. Поверх сырого 64-битного потока
// PCG все производные операции (диапазоны, float, взвешенный выбор) реализованы здесь,
// чтобы формат не зависел от деталей стандартной библиотеки.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// streamIncrement — второе слово состояния PCG. Фиксировано как часть формата.
const streamIncrement = 0xda3e39cb94b95bdb

// Random — детерминированный поток псевдослучайных чисел.
// Не потокобезопасен: каждый поток принадлежит одному владельцу.
type Random struct {
	src *rand.PCG
}

// FromSeed создаёт поток из 32-битного сида.
func FromSeed(seed uint32) *Random {
	return &Random{src: rand.NewPCG(uint64(seed), streamIncrement^uint64(seed))}
}

// Uint64 возвращает следующее сырое 64-битное значение.
func (r *Random) Uint64() uint64 {
	return r.src.Uint64()
}

// Uint32 возвращает старшие 32 бита следующего значения.
func (r *Random) Uint32() uint32 {
	return uint32(r.src.Uint64() >> 32)
}

// RangeInclusive возвращает целое в диапазоне [lo, hi].
// Паникует при lo > hi: это ошибка вызывающего кода.
func (r *Random) RangeInclusive(lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("rng: RangeInclusive called with lo=%d > hi=%d", lo, hi))
	}

	span := uint64(int64(hi)-int64(lo)) + 1
	if span == 0 {
		// Полный 64-битный диапазон.
		return int(r.src.Uint64())
	}

	// Отбрасываем хвост, чтобы распределение было равномерным.
	threshold := -span % span
	for {
		v := r.src.Uint64()
		if v >= threshold {
			return lo + int(v%span)
		}
	}
}

// Float64 возвращает число в [0, 1) с 53 битами точности.
func (r *Random) Float64() float64 {
	return float64(r.src.Uint64()>>11) / (1 << 53)
}

// Chance возвращает true с вероятностью numerator/denominator.
func (r *Random) Chance(numerator, denominator int) bool {
	return r.RangeInclusive(1, denominator) <= numerator
}

// Clone возвращает независимую копию потока в текущей позиции.
// Чтения из копии не сдвигают оригинал.
func (r *Random) Clone() *Random {
	state := *r.src
	return &Random{src: &state}
}

// MarshalBinary сохраняет полное состояние потока.
func (r *Random) MarshalBinary() ([]byte, error) {
	return r.src.MarshalBinary()
}

// UnmarshalBinary восстанавливает состояние, сохранённое MarshalBinary.
func (r *Random) UnmarshalBinary(data []byte) error {
	if r.src == nil {
		r.src = &rand.PCG{}
	}
	if err := r.src.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("rng: restore state: %w", err)
	}
	return nil
}

// Weighted — вариант с весом для WeightedChoice.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// WeightedChoice выбирает значение пропорционально весам.
// Варианты с весом <= 0 никогда не выбираются. Паникует, если суммарный вес не положителен.
// Расходует ровно одно значение RangeInclusive.
func WeightedChoice[T any](r *Random, options []Weighted[T]) T {
	total := 0
	for _, o := range options {
		if o.Weight > 0 {
			total += o.Weight
		}
	}
	if total <= 0 {
		panic("rng: WeightedChoice requires a positive total weight")
	}

	roll := r.RangeInclusive(0, total-1)
	for _, o := range options {
		if o.Weight <= 0 {
			continue
		}
		if roll < o.Weight {
			return o.Value
		}
		roll -= o.Weight
	}

	// Недостижимо: roll < total.
	panic("rng: WeightedChoice fell through")
}

// Choose выбирает равновероятный элемент. Для пустого среза ничего не тратит и возвращает false.
func Choose[T any](r *Random, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.RangeInclusive(0, len(items)-1)], true
}

// ChooseWithFallback выбирает равновероятный элемент или fallback для пустого среза.
func ChooseWithFallback[T any](r *Random, items []T, fallback T) T {
	if v, ok := Choose(r, items); ok {
		return v
	}
	return fallback
}
