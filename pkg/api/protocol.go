package api

// --- СЕРВЕР -> НАБЛЮДАТЕЛЬ ---

// Типы сообщений
const (
	TypeHello  = "HELLO"
	TypeUpdate = "UPDATE"
	TypeEnded  = "ENDED"
)

// ServerResponse — снимок состояния сессии после тика.
// Сервер отправляет его всем наблюдателям; симуляция не зависит от того, есть ли они.
type ServerResponse struct {
	// Type тип сообщения: HELLO при подключении, UPDATE после тика, ENDED после конца игры.
	Type string `json:"type"`

	// SessionID идентификатор игровой сессии (процесса).
	SessionID string `json:"sessionId"`

	Seed uint32 `json:"seed"`

	// Tick номер последнего обработанного ввода.
	Tick int `json:"tick"`

	// Turn число сделанных игроком ходов.
	Turn int `json:"turn"`

	Side   string `json:"side"`
	Status string `json:"status"`

	// Grid метаданные о чанках мира.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map видимые клетки.
	Map []TileView `json:"map,omitempty"`

	// Entities видимые монстры и предметы.
	Entities []EntityView `json:"entities,omitempty"`

	Player *PlayerView `json:"player,omitempty"`

	// Verification снимок для сверки реплеев.
	Verification *VerificationView `json:"verification,omitempty"`

	// Logs срез новых сообщений, сгенерированных с прошлого тика.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta описывает разбиение мира на чанки.
type GridMeta struct {
	ChunkSize  int `json:"chunkSize"`
	ChunkCount int `json:"chunkCount"`
	Resident   int `json:"resident"`
}

// PointView — клетка в мировых координатах.
type PointView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// TileView это DTO для одной клетки карты.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление клетки.
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	// IsTree true, если клетка непроходима.
	IsTree bool `json:"isTree"`

	IsVisible  bool `json:"isVisible"`
	IsExplored bool `json:"isExplored"`
}

// EntityView это DTO для монстра или предмета.
type EntityView struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"` // ENEMY, NPC, ITEM
	Name string `json:"name"`

	Pos PointView `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// Companion true для NPC, который идёт за игроком.
	Companion bool `json:"companion,omitempty"`
}

// PlayerView это DTO для состояния игрока.
type PlayerView struct {
	Pos       PointView `json:"pos"`
	Symbol    string    `json:"symbol"`
	Color     string    `json:"color"`
	Will      int       `json:"will"`
	MaxWill   int       `json:"maxWill"`
	Mind      int       `json:"mind"`
	Tolerance int       `json:"tolerance"`
	Kills     int       `json:"kills"`
	IsDead    bool      `json:"isDead"`

	Inventory []ItemView `json:"inventory"`
}

// ItemView — стопка предметов одного вида в инвентаре.
type ItemView struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// VerificationView повторяет строку проверки из лога реплея.
type VerificationView struct {
	Turn       int           `json:"turn"`
	ChunkCount int           `json:"chunkCount"`
	PlayerPos  PointView     `json:"playerPos"`
	Monsters   []MonsterView `json:"monsters"`
}

// MonsterView — живой монстр в снимке проверки.
type MonsterView struct {
	Pos      PointView `json:"pos"`
	ChunkPos PointView `json:"chunkPos"`
	Kind     string    `json:"kind"`
}

// ChunkView — сводка по одному созданному чанку.
type ChunkView struct {
	X        int32 `json:"x"`
	Y        int32 `json:"y"`
	Resident bool  `json:"resident"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ITEM, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// VersionInfo — ответ /version.
type VersionInfo struct {
	FormatVersion string `json:"formatVersion"`
	Build         string `json:"build"`
	Date          string `json:"date,omitempty"`
	Branch        string `json:"branch,omitempty"`
}
