package domain

import (
	"encoding/json"
	"fmt"
	"slices"

	"dose-response/internal/core/types/enums"
)

// MonsterSnapshot — монстр в снимке состояния: позиция, начало его чанка и вид.
// В логе записывается кортежем [pos, chunk_pos, kind].
type MonsterSnapshot struct {
	Pos      Point
	ChunkPos Point
	Kind     enums.MonsterKind
}

func (m MonsterSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{m.Pos, m.ChunkPos, m.Kind})
}

func (m *MonsterSnapshot) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("monster snapshot: %w", err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("monster snapshot: expected 3 fields, got %d", len(raw))
	}
	if err := json.Unmarshal(raw[0], &m.Pos); err != nil {
		return fmt.Errorf("monster snapshot pos: %w", err)
	}
	if err := json.Unmarshal(raw[1], &m.ChunkPos); err != nil {
		return fmt.Errorf("monster snapshot chunk pos: %w", err)
	}
	if err := json.Unmarshal(raw[2], &m.Kind); err != nil {
		return fmt.Errorf("monster snapshot kind: %w", err)
	}
	return nil
}

// Verification — каноничный снимок состояния для проверки реплея.
type Verification struct {
	Turn       int               `json:"turn"`
	ChunkCount int               `json:"chunk_count"`
	PlayerPos  Point             `json:"player_pos"`
	Monsters   []MonsterSnapshot `json:"monsters"`
}

// SortMonsters приводит список монстров к каноничному порядку (x, y, kind).
func (v *Verification) SortMonsters() {
	slices.SortFunc(v.Monsters, func(a, b MonsterSnapshot) int {
		if a.Pos.X != b.Pos.X {
			return a.Pos.X - b.Pos.X
		}
		if a.Pos.Y != b.Pos.Y {
			return a.Pos.Y - b.Pos.Y
		}
		return int(a.Kind) - int(b.Kind)
	})
}

// RecordKind — тип записи в логе реплея.
type RecordKind uint8

const (
	RecordInput RecordKind = iota
	RecordVerification
)

// ReplayRecord — одна строка лога после заголовка.
type ReplayRecord struct {
	Kind         RecordKind
	Input        *Input
	Verification *Verification
}

// ReplayLog — разобранный лог реплея.
type ReplayLog struct {
	Seed    uint32
	Version string
	Commit  string
	Records []ReplayRecord
}

// InputCount — количество записей ввода (= количество тиков).
func (l *ReplayLog) InputCount() int {
	n := 0
	for _, r := range l.Records {
		if r.Kind == RecordInput {
			n++
		}
	}
	return n
}

// VerificationCount — количество снимков в логе.
func (l *ReplayLog) VerificationCount() int {
	return len(l.Records) - l.InputCount()
}

// LastVerification возвращает последний снимок, если он есть.
func (l *ReplayLog) LastVerification() (*Verification, bool) {
	for i := len(l.Records) - 1; i >= 0; i-- {
		if l.Records[i].Kind == RecordVerification {
			return l.Records[i].Verification, true
		}
	}
	return nil, false
}
