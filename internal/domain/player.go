package domain

import (
	"slices"

	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
)

// Player — состояние игрока.
type Player struct {
	Pos        Point       `json:"pos"`
	Glyph      types.Glyph `json:"glyph"`
	ColorIndex int         `json:"colorIndex"`
	Will       int         `json:"will"`
	MaxWill    int         `json:"maxWill"`
	Mind       int         `json:"mind"`
	Tolerance  int         `json:"tolerance"`
	Inventory  []Item      `json:"inventory"`
	Dead       bool        `json:"dead"`
	Invincible bool        `json:"invincible"`
	Kills      int         `json:"kills"`
}

func (p *Player) IsAlive() bool {
	return !p.Dead
}

// AddItem кладёт предмет в инвентарь.
func (p *Player) AddItem(it Item) {
	p.Inventory = append(p.Inventory, it)
}

// TakeItem достаёт первый предмет нужного вида. Возвращает false, если его нет.
func (p *Player) TakeItem(kind enums.ItemKind) (Item, bool) {
	for i, it := range p.Inventory {
		if it.Kind == kind {
			p.Inventory = slices.Delete(p.Inventory, i, i+1)
			return it, true
		}
	}
	return Item{}, false
}

// CountItems — сколько предметов вида kind в инвентаре.
func (p *Player) CountItems(kind enums.ItemKind) int {
	n := 0
	for _, it := range p.Inventory {
		if it.Kind == kind {
			n++
		}
	}
	return n
}

// LoseWill снижает волю. Неуязвимый игрок не умирает, но воля не опускается ниже 1.
func (p *Player) LoseWill(n int) {
	p.Will -= n
	if p.Will > 0 {
		return
	}
	if p.Invincible {
		p.Will = 1
		return
	}
	p.Will = 0
	p.Dead = true
}

// Apply применяет модификатор предмета.
func (p *Player) Apply(m Modifier) {
	switch m.Kind {
	case ModifierIntoxication:
		// Толерантность ослабляет эффект дозы, но не делает его отрицательным.
		gain := max(m.StateOfMind-p.Tolerance, 0)
		p.Mind = min(p.Mind+gain, PlayerMaxMind)
		p.Tolerance += m.ToleranceIncrease
	case ModifierAttribute:
		p.Will = min(p.Will+m.Will, p.MaxWill)
		p.Mind = min(p.Mind+m.StateOfMind, PlayerMaxMind)
	}
}

// Withdraw — ломка: состояние сознания падает каждый ход.
func (p *Player) Withdraw() {
	p.Mind = max(p.Mind-WithdrawalPerTurn, PlayerMinMind)
}
