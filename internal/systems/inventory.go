package systems

import (
	"errors"
	"fmt"

	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
)

// ErrNoItem — в инвентаре нет предмета нужного вида.
var ErrNoItem = errors.New("no such item in inventory")

// --- PICKUP ---

// TryPickup поднимает предмет из клетки игрока.
func TryPickup(w *domain.World, player *domain.Player) (domain.Item, bool) {
	it, ok := w.TakeItem(player.Pos)
	if !ok {
		return domain.Item{}, false
	}
	player.AddItem(it)
	return it, true
}

// --- USE ---

// UseResult — последствия использования предмета.
type UseResult struct {
	Item   domain.Item
	Effect *domain.Effect
	Killed int
}

// UseItem применяет предмет из инвентаря. Особые дозы взрываются вокруг игрока.
func UseItem(w *domain.World, player *domain.Player, kind enums.ItemKind) (UseResult, error) {
	it, ok := player.TakeItem(kind)
	if !ok {
		return UseResult{}, fmt.Errorf("use %s: %w", kind, ErrNoItem)
	}
	player.Apply(it.Modifier)

	res := UseResult{Item: it}
	if e, ok := explosionFor(kind, player.Pos); ok {
		res.Effect = &e
		res.Killed = len(Explode(w, player, e))
	}
	return res, nil
}

func explosionFor(kind enums.ItemKind, center domain.Point) (domain.Effect, bool) {
	switch kind {
	case enums.ItemCardinalDose:
		return domain.NewExplosion(center, domain.ExplosionRadius, domain.ShapeCardinal), true
	case enums.ItemDiagonalDose:
		return domain.NewExplosion(center, domain.ExplosionRadius, domain.ShapeDiagonal), true
	case enums.ItemStrongDose:
		return domain.NewExplosion(center, domain.StrongExplosionSize, domain.ShapeSquare), true
	}
	return domain.Effect{}, false
}

// --- IRRESISTIBLE ---

// IrresistibleDose ищет дозу, которая тянет к себе игрока в ломке.
// Доза действует, если расстояние до неё не больше её Irresistible. Из нескольких берётся
// ближайшая, при равенстве — первая в порядке строк.
func IrresistibleDose(w *domain.World, player *domain.Player) (domain.Point, bool) {
	if player.Mind > 0 {
		return domain.Point{}, false
	}

	const reach = 4
	best, bestDist, found := domain.Point{}, reach+1, false
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			p := player.Pos.Shift(dx, dy)
			if p == player.Pos || !w.IsInBounds(p) {
				continue
			}
			it, ok := w.ItemAt(p)
			if !ok || !it.Kind.IsDose() {
				continue
			}
			d := p.ChebyshevTo(player.Pos)
			if d <= it.Irresistible && d < bestDist {
				best, bestDist, found = p, d, true
			}
		}
	}
	return best, found
}
