package systems

import (
	"errors"
	"testing"

	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
)

func dose(kind enums.ItemKind, som, irresistible int) domain.Item {
	return domain.Item{
		Kind:         kind,
		Modifier:     domain.Modifier{Kind: domain.ModifierIntoxication, StateOfMind: som, ToleranceIncrease: 1},
		Irresistible: irresistible,
	}
}

func TestTryPickup(t *testing.T) {
	w := fixture{items: []domain.ItemSlot{{Pos: pt(2, 2), Item: dose(enums.ItemDose, 70, 2)}}}.world()
	player := newPlayer(pt(2, 2))

	it, ok := TryPickup(w, player)
	if !ok || it.Kind != enums.ItemDose {
		t.Fatalf("TryPickup = %v, %v", it, ok)
	}
	if player.CountItems(enums.ItemDose) != 1 {
		t.Error("dose not in inventory")
	}
	if _, ok := TryPickup(w, player); ok {
		t.Error("picked up the same item twice")
	}
}

func TestUseItem(t *testing.T) {
	tests := []struct {
		name       string
		item       domain.Item
		wantEffect bool
		wantShape  domain.ExplosionShape
		wantKilled int
	}{
		{"plain dose", dose(enums.ItemDose, 30, 2), false, 0, 0},
		{"cardinal dose", dose(enums.ItemCardinalDose, 30, 3), true, domain.ShapeCardinal, 1},
		{"diagonal dose", dose(enums.ItemDiagonalDose, 30, 3), true, domain.ShapeDiagonal, 1},
		{"strong dose", dose(enums.ItemStrongDose, 30, 4), true, domain.ShapeSquare, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := fixture{monsters: []placedMonster{
				{pt(0, 2), enums.MonsterAnxiety},
				{pt(2, 2), enums.MonsterAnxiety},
			}}.world()
			player := newPlayer(pt(0, 0))
			player.AddItem(tt.item)

			res, err := UseItem(w, player, tt.item.Kind)
			if err != nil {
				t.Fatalf("UseItem: %v", err)
			}
			if player.Mind != 20+30 {
				t.Errorf("Mind = %d, want 50", player.Mind)
			}
			if (res.Effect != nil) != tt.wantEffect {
				t.Fatalf("Effect = %v, want effect=%v", res.Effect, tt.wantEffect)
			}
			if res.Effect != nil && res.Effect.Shape != tt.wantShape {
				t.Errorf("Shape = %v, want %v", res.Effect.Shape, tt.wantShape)
			}
			if res.Killed != tt.wantKilled {
				t.Errorf("Killed = %d, want %d", res.Killed, tt.wantKilled)
			}
			if len(player.Inventory) != 0 {
				t.Error("used item still in inventory")
			}
		})
	}
}

func TestUseItem_Missing(t *testing.T) {
	w := fixture{}.world()
	if _, err := UseItem(w, newPlayer(pt(0, 0)), enums.ItemFood); !errors.Is(err, ErrNoItem) {
		t.Errorf("UseItem = %v, want ErrNoItem", err)
	}
}

func TestIrresistibleDose(t *testing.T) {
	w := fixture{items: []domain.ItemSlot{
		{Pos: pt(2, 0), Item: dose(enums.ItemDose, 70, 2)},
		{Pos: pt(-3, 0), Item: dose(enums.ItemDose, 70, 2)},
		{Pos: pt(0, 1), Item: domain.Item{Kind: enums.ItemFood, Irresistible: 5}},
	}}.world()

	player := newPlayer(pt(0, 0))
	player.Mind = 0
	got, ok := IrresistibleDose(w, player)
	if !ok || got != pt(2, 0) {
		t.Errorf("IrresistibleDose = %v, %v; want (2,0)", got, ok)
	}

	player.Mind = 10
	if _, ok := IrresistibleDose(w, player); ok {
		t.Error("a sober player is not pulled")
	}
}
