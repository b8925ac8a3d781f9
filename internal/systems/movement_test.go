package systems

import (
	"testing"

	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
)

func TestCalculateMove(t *testing.T) {
	w := fixture{
		trees:    []domain.Point{pt(5, 5)},
		monsters: []placedMonster{{pt(4, 3), enums.MonsterAnxiety}},
		size:     64,
	}.world()

	tests := []struct {
		name        string
		from, dir   domain.Point
		player      domain.Point
		wantMoved   bool
		wantBlocked bool
		wantMonster bool
		wantPlayer  bool
	}{
		{"empty tile", pt(4, 5), pt(0, -1), pt(4, 5), true, false, false, false},
		{"tree", pt(4, 5), pt(1, 0), pt(4, 5), false, true, false, false},
		{"monster", pt(4, 4), pt(0, -1), pt(4, 4), false, false, true, false},
		{"player blocks monsters", pt(4, 3), pt(0, 1), pt(4, 4), false, false, false, true},
		{"world edge", pt(31, 0), pt(1, 0), pt(0, 0), false, true, false, false},
		{"negative edge is inside", pt(-31, 0), pt(-1, 0), pt(0, 0), true, false, false, false},
		{"crosses chunk boundary", pt(15, 0), pt(1, 1), pt(15, 0), true, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateMove(w, tt.from, tt.dir, tt.player)
			if res.To != tt.from.Add(tt.dir) {
				t.Errorf("To = %v, want %v", res.To, tt.from.Add(tt.dir))
			}
			if res.HasMoved != tt.wantMoved {
				t.Errorf("HasMoved = %v, want %v", res.HasMoved, tt.wantMoved)
			}
			if res.IsBlocked != tt.wantBlocked {
				t.Errorf("IsBlocked = %v, want %v", res.IsBlocked, tt.wantBlocked)
			}
			if (res.BlockedBy != nil) != tt.wantMonster {
				t.Errorf("BlockedBy = %v, want monster=%v", res.BlockedBy, tt.wantMonster)
			}
			if res.BlockedByPlayer != tt.wantPlayer {
				t.Errorf("BlockedByPlayer = %v, want %v", res.BlockedByPlayer, tt.wantPlayer)
			}
		})
	}
}

func TestHasLineOfSight(t *testing.T) {
	// . . . . .
	// . . # . .  (2,1)
	// . # # # .  (1,2), (2,2), (3,2)
	// . . # . .  (2,3)
	// . . . . .
	w := fixture{trees: []domain.Point{pt(2, 1), pt(1, 2), pt(2, 2), pt(3, 2), pt(2, 3)}}.world()

	tests := []struct {
		name   string
		p1, p2 domain.Point
		want   bool
	}{
		{"Clear horizontal", pt(0, 0), pt(4, 0), true},
		{"Blocked horizontal", pt(0, 2), pt(4, 2), false},
		{"Clear diagonal", pt(0, 0), pt(1, 1), true},
		{"Blocked diagonal", pt(0, 0), pt(4, 4), false},
		{"Adjacent tree", pt(2, 1), pt(2, 2), true},
		{"Behind tree", pt(2, 1), pt(2, 3), false},
		{"Same point", pt(3, 3), pt(3, 3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(w, tt.p1, tt.p2); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}
