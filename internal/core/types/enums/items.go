package enums

import (
	"fmt"
	"strings"
)

type ItemKind uint8

const (
	ItemFood ItemKind = iota
	ItemDose
	ItemCardinalDose
	ItemDiagonalDose
	ItemStrongDose
)

// AllItemKinds — все виды предметов в каноническом порядке.
var AllItemKinds = []ItemKind{ItemFood, ItemDose, ItemCardinalDose, ItemDiagonalDose, ItemStrongDose}

var itemKindToString = map[ItemKind]string{
	ItemFood:         "Food",
	ItemDose:         "Dose",
	ItemCardinalDose: "CardinalDose",
	ItemDiagonalDose: "DiagonalDose",
	ItemStrongDose:   "StrongDose",
}

func (k ItemKind) String() string {
	if val, ok := itemKindToString[k]; ok {
		return val
	}
	return "Unknown"
}

// ParseItemKind принимает имя без учёта регистра.
func ParseItemKind(s string) (ItemKind, error) {
	for k, v := range itemKindToString {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown item kind %q", s)
}

// IsDose — относится ли предмет к дозам.
func (k ItemKind) IsDose() bool {
	return k != ItemFood
}

func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ItemKind) UnmarshalText(b []byte) error {
	v, err := ParseItemKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
