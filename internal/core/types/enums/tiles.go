package enums

import "fmt"

type TileKind uint8

const (
	TileEmpty TileKind = iota
	TileTree
)

var tileKindToString = map[TileKind]string{
	TileEmpty: "Empty",
	TileTree:  "Tree",
}

var tileKindStringToType = map[string]TileKind{
	"Empty": TileEmpty,
	"Tree":  TileTree,
}

func (k TileKind) String() string {
	if val, ok := tileKindToString[k]; ok {
		return val
	}
	return "Unknown"
}

// IsWalkable — можно ли встать на клетку.
func (k TileKind) IsWalkable() bool {
	return k == TileEmpty
}

func (k TileKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *TileKind) UnmarshalText(b []byte) error {
	v, ok := tileKindStringToType[string(b)]
	if !ok {
		return fmt.Errorf("unknown tile kind %q", b)
	}
	*k = v
	return nil
}
