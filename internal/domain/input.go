package domain

// KeyCode — имя клавиши в логе реплея.
type KeyCode string

// Коды клавиш, которые понимает симуляция. Остальные игнорируются.
const (
	KeyUp    KeyCode = "Up"
	KeyDown  KeyCode = "Down"
	KeyLeft  KeyCode = "Left"
	KeyRight KeyCode = "Right"

	KeyNumPad1 KeyCode = "NumPad1"
	KeyNumPad2 KeyCode = "NumPad2"
	KeyNumPad3 KeyCode = "NumPad3"
	KeyNumPad4 KeyCode = "NumPad4"
	KeyNumPad6 KeyCode = "NumPad6"
	KeyNumPad7 KeyCode = "NumPad7"
	KeyNumPad8 KeyCode = "NumPad8"
	KeyNumPad9 KeyCode = "NumPad9"

	KeyH KeyCode = "H"
	KeyJ KeyCode = "J"
	KeyK KeyCode = "K"
	KeyL KeyCode = "L"
	KeyY KeyCode = "Y"
	KeyU KeyCode = "U"
	KeyB KeyCode = "B"
	KeyN KeyCode = "N"

	KeyD1 KeyCode = "D1"
	KeyD2 KeyCode = "D2"
	KeyD3 KeyCode = "D3"
	KeyD4 KeyCode = "D4"
	KeyD5 KeyCode = "D5"
)

// Key — одно нажатие за тик.
type Key struct {
	Code  KeyCode `json:"code"`
	Alt   bool    `json:"alt"`
	Ctrl  bool    `json:"ctrl"`
	Shift bool    `json:"shift"`
}

// Mouse — состояние указателя за тик. TilePos — клетка мира под курсором.
type Mouse struct {
	TilePos      Point `json:"tile_pos"`
	ScreenPos    Point `json:"screen_pos"`
	LeftClicked  bool  `json:"left_clicked"`
	RightClicked bool  `json:"right_clicked"`
	LeftIsDown   bool  `json:"left_is_down"`
	RightIsDown  bool  `json:"right_is_down"`
}

// Input — всё, что игрок передал симуляции за один тик.
type Input struct {
	Keys   []Key `json:"keys"`
	Mouse  Mouse `json:"mouse"`
	TickID int   `json:"tick_id"`
}

// IsEmpty — в тике не было ни клавиш, ни кликов.
func (in Input) IsEmpty() bool {
	return len(in.Keys) == 0 && !in.Mouse.LeftClicked && !in.Mouse.RightClicked
}
