package domain

import "testing"

func TestChunkCoordOf(t *testing.T) {
	tests := []struct {
		p    Point
		want ChunkCoord
	}{
		{Point{0, 0}, ChunkCoord{0, 0}},
		{Point{31, 31}, ChunkCoord{0, 0}},
		{Point{32, 0}, ChunkCoord{1, 0}},
		{Point{-1, 0}, ChunkCoord{-1, 0}},
		{Point{-32, -33}, ChunkCoord{-1, -2}},
		{Point{-33, 64}, ChunkCoord{-2, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.p.String(), func(t *testing.T) {
			if got := ChunkCoordOf(tt.p, 32); got != tt.want {
				t.Errorf("ChunkCoordOf(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestLocalIndex(t *testing.T) {
	tests := []struct {
		p    Point
		want int
	}{
		{Point{0, 0}, 0},
		{Point{1, 0}, 1},
		{Point{0, 1}, 32},
		{Point{-1, -1}, 31*32 + 31},
		{Point{33, -32}, 1},
	}
	for _, tt := range tests {
		if got := LocalIndex(tt.p, 32); got != tt.want {
			t.Errorf("LocalIndex(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestPoint_Arithmetic(t *testing.T) {
	a := Point{2, -3}
	b := Point{-1, 5}

	if got := a.Add(b); got != (Point{1, 2}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Point{3, -8}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(3); got != (Point{6, -9}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.DistanceSquaredTo(b); got != 9+64 {
		t.Errorf("DistanceSquaredTo = %d", got)
	}
	if !a.IsAdjacent(a.Shift(1, 1)) || a.IsAdjacent(a) || a.IsAdjacent(a.Shift(2, 0)) {
		t.Error("IsAdjacent is wrong")
	}
}

func TestEffect_Affected(t *testing.T) {
	center := Point{10, 10}
	tests := []struct {
		name  string
		shape ExplosionShape
		want  int
	}{
		{"square", ShapeSquare, 24},
		{"cardinal", ShapeCardinal, 8},
		{"diagonal", ShapeDiagonal, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			area := NewExplosion(center, 2, tt.shape).Affected()
			if len(area) != tt.want {
				t.Errorf("len(Affected()) = %d, want %d", len(area), tt.want)
			}
			for _, p := range area {
				if p == center {
					t.Error("center must not be affected")
				}
			}
		})
	}

	if NewScreenFade(0, 3).Affected() != nil {
		t.Error("screen fade affects no tiles")
	}
}

func TestPlayer_Modifiers(t *testing.T) {
	p := Player{Will: 2, MaxWill: 5, Mind: 10, Tolerance: 5}
	p.Apply(Modifier{Kind: ModifierIntoxication, StateOfMind: 20, ToleranceIncrease: 1})
	if p.Mind != 25 || p.Tolerance != 6 {
		t.Errorf("after dose: mind=%d tolerance=%d", p.Mind, p.Tolerance)
	}

	p.Apply(Modifier{Kind: ModifierAttribute, Will: 10})
	if p.Will != p.MaxWill {
		t.Errorf("will = %d, want capped at %d", p.Will, p.MaxWill)
	}

	p.LoseWill(10)
	if !p.Dead || p.Will != 0 {
		t.Errorf("player should be dead: %+v", p)
	}

	inv := Player{Will: 1, Invincible: true}
	inv.LoseWill(3)
	if inv.Dead || inv.Will != 1 {
		t.Errorf("invincible player died: %+v", inv)
	}
}

func TestVerification_SortMonsters(t *testing.T) {
	v := Verification{Monsters: []MonsterSnapshot{
		{Pos: Point{2, 0}, Kind: 0},
		{Pos: Point{1, 5}, Kind: 3},
		{Pos: Point{1, 5}, Kind: 1},
		{Pos: Point{1, -2}, Kind: 4},
	}}
	v.SortMonsters()
	want := []Point{{1, -2}, {1, 5}, {1, 5}, {2, 0}}
	for i, m := range v.Monsters {
		if m.Pos != want[i] {
			t.Fatalf("position %d = %v, want %v", i, m.Pos, want[i])
		}
	}
	if v.Monsters[1].Kind != 1 || v.Monsters[2].Kind != 3 {
		t.Error("ties must be ordered by kind")
	}
}
