package enums

import "fmt"

// MonsterKind — вид монстра. Порядок значений задаёт порядок сортировки в снимках.
type MonsterKind uint8

const (
	MonsterAnxiety MonsterKind = iota
	MonsterDepression
	MonsterHunger
	MonsterShadows
	MonsterVoices
	MonsterNpc
)

var monsterKindToString = map[MonsterKind]string{
	MonsterAnxiety:    "Anxiety",
	MonsterDepression: "Depression",
	MonsterHunger:     "Hunger",
	MonsterShadows:    "Shadows",
	MonsterVoices:     "Voices",
	MonsterNpc:        "Npc",
}

var monsterKindStringToType = map[string]MonsterKind{
	"Anxiety":    MonsterAnxiety,
	"Depression": MonsterDepression,
	"Hunger":     MonsterHunger,
	"Shadows":    MonsterShadows,
	"Voices":     MonsterVoices,
	"Npc":        MonsterNpc,
}

func (k MonsterKind) String() string {
	if val, ok := monsterKindToString[k]; ok {
		return val
	}
	return "Unknown"
}

// ParseMonsterKind конвертирует имя в MonsterKind.
func ParseMonsterKind(s string) (MonsterKind, error) {
	if val, ok := monsterKindStringToType[s]; ok {
		return val, nil
	}
	return 0, fmt.Errorf("unknown monster kind %q", s)
}

// IsHostile — враждебен ли монстр игроку.
func (k MonsterKind) IsHostile() bool {
	return k != MonsterNpc
}

func (k MonsterKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *MonsterKind) UnmarshalText(b []byte) error {
	v, err := ParseMonsterKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// CompanionBonus — бонус, который даёт NPC-компаньон.
type CompanionBonus uint8

const (
	BonusNone CompanionBonus = iota
	BonusDoubleWillGrowth
	BonusHalveExhaustion
	BonusExtraActionPoint
)

var companionBonusToString = map[CompanionBonus]string{
	BonusNone:             "None",
	BonusDoubleWillGrowth: "DoubleWillGrowth",
	BonusHalveExhaustion:  "HalveExhaustion",
	BonusExtraActionPoint: "ExtraActionPoint",
}

func (b CompanionBonus) String() string {
	if val, ok := companionBonusToString[b]; ok {
		return val
	}
	return "Unknown"
}

func (b CompanionBonus) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *CompanionBonus) UnmarshalText(text []byte) error {
	for k, v := range companionBonusToString {
		if v == string(text) {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("unknown companion bonus %q", text)
}
