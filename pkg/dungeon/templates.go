package dungeon

import (
	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/pkg/rng"
)

// Веса генерации. Меняются только вместе с version.FormatVersion.
var terrainWeights = []rng.Weighted[enums.TileKind]{
	{Value: enums.TileEmpty, Weight: 610},
	{Value: enums.TileTree, Weight: 390},
}

var treeColors = []types.Color{types.ColorTree1, types.ColorTree2, types.ColorTree3}

// monsterPick — результат вытягивания монстра; ok=false означает пустую клетку.
type monsterPick struct {
	kind enums.MonsterKind
	ok   bool
}

var monsterWeights = []rng.Weighted[monsterPick]{
	{Value: monsterPick{}, Weight: 970},
	{Value: monsterPick{enums.MonsterAnxiety, true}, Weight: 6},
	{Value: monsterPick{enums.MonsterDepression, true}, Weight: 6},
	{Value: monsterPick{enums.MonsterHunger, true}, Weight: 6},
	{Value: monsterPick{enums.MonsterShadows, true}, Weight: 6},
	{Value: monsterPick{enums.MonsterVoices, true}, Weight: 6},
	{Value: monsterPick{enums.MonsterNpc, true}, Weight: 2},
}

var companionBonuses = []enums.CompanionBonus{
	enums.BonusDoubleWillGrowth,
	enums.BonusHalveExhaustion,
	enums.BonusExtraActionPoint,
}

type itemPick struct {
	kind enums.ItemKind
	ok   bool
}

var itemWeights = []rng.Weighted[itemPick]{
	{Value: itemPick{}, Weight: 1000},
	{Value: itemPick{enums.ItemDose, true}, Weight: 8},
	{Value: itemPick{enums.ItemStrongDose, true}, Weight: 3},
	{Value: itemPick{enums.ItemCardinalDose, true}, Weight: 2},
	{Value: itemPick{enums.ItemDiagonalDose, true}, Weight: 2},
	{Value: itemPick{enums.ItemFood, true}, Weight: 5},
}

// MonsterGlyphs — внешний вид монстров по видам.
var MonsterGlyphs = map[enums.MonsterKind]types.Glyph{
	enums.MonsterAnxiety:    types.MakeGlyph(types.ColorAnxiety, 'a'),
	enums.MonsterDepression: types.MakeGlyph(types.ColorDepression, 'D'),
	enums.MonsterHunger:     types.MakeGlyph(types.ColorHunger, 'h'),
	enums.MonsterShadows:    types.MakeGlyph(types.ColorShadows, 'S'),
	enums.MonsterVoices:     types.MakeGlyph(types.ColorVoices, 'v'),
	enums.MonsterNpc:        types.MakeGlyph(types.ColorNpcWill, '@'),
}

var npcColors = map[enums.CompanionBonus]types.Color{
	enums.BonusDoubleWillGrowth: types.ColorNpcWill,
	enums.BonusHalveExhaustion:  types.ColorNpcMind,
	enums.BonusExtraActionPoint: types.ColorNpcSpeed,
}

// ItemTemplate — заготовка предмета и разброс силы дозы.
type ItemTemplate struct {
	Item domain.Item
	// MindVariance — максимальное отклонение StateOfMind в обе стороны.
	MindVariance int
}

var ItemTemplates = map[enums.ItemKind]ItemTemplate{
	enums.ItemDose: {
		Item: domain.Item{
			Kind:         enums.ItemDose,
			Glyph:        types.MakeGlyph(types.ColorDose, 'i'),
			Modifier:     domain.Modifier{Kind: domain.ModifierIntoxication, StateOfMind: 72, ToleranceIncrease: 1},
			Irresistible: 2,
		},
		MindVariance: 5,
	},
	enums.ItemStrongDose: {
		Item: domain.Item{
			Kind:         enums.ItemStrongDose,
			Glyph:        types.MakeGlyph(types.ColorStrongDose, 'I'),
			Modifier:     domain.Modifier{Kind: domain.ModifierIntoxication, StateOfMind: 130, ToleranceIncrease: 3},
			Irresistible: 4,
		},
		MindVariance: 10,
	},
	enums.ItemCardinalDose: {
		Item: domain.Item{
			Kind:         enums.ItemCardinalDose,
			Glyph:        types.MakeGlyph(types.ColorDose, '+'),
			Modifier:     domain.Modifier{Kind: domain.ModifierIntoxication, StateOfMind: 90, ToleranceIncrease: 2},
			Irresistible: 3,
		},
		MindVariance: 7,
	},
	enums.ItemDiagonalDose: {
		Item: domain.Item{
			Kind:         enums.ItemDiagonalDose,
			Glyph:        types.MakeGlyph(types.ColorDose, 'x'),
			Modifier:     domain.Modifier{Kind: domain.ModifierIntoxication, StateOfMind: 90, ToleranceIncrease: 2},
			Irresistible: 3,
		},
		MindVariance: 7,
	},
	enums.ItemFood: {
		Item: domain.Item{
			Kind:     enums.ItemFood,
			Glyph:    types.MakeGlyph(types.ColorFood, '%'),
			Modifier: domain.Modifier{Kind: domain.ModifierAttribute, StateOfMind: 10, Will: 1},
		},
	},
}

// NewItem создаёт предмет по заготовке. Дозы получают случайный разброс силы.
func NewItem(kind enums.ItemKind, r *rng.Random) domain.Item {
	tpl := ItemTemplates[kind]
	item := tpl.Item
	if tpl.MindVariance > 0 && item.Modifier.Kind == domain.ModifierIntoxication {
		item.Modifier.StateOfMind += r.RangeInclusive(-tpl.MindVariance, tpl.MindVariance)
	}
	return item
}
