package engine

import (
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/pkg/api"
)

// BuildSnapshot создает снимок сессии для наблюдателей: видимые клетки, монстры и предметы,
// состояние игрока и снимок проверки. Все данные копируются, ссылок на мир в снимке нет.
// Забирает накопленные сообщения лога.
func (g *Game) BuildSnapshot(sessionID, msgType string) api.ServerResponse {
	resp := api.ServerResponse{
		Type:      msgType,
		SessionID: sessionID,
		Seed:      g.Seed,
		Tick:      g.TickID,
		Turn:      g.Turn,
		Side:      g.Side.String(),
		Status:    g.Status.String(),
		Grid: &api.GridMeta{
			ChunkSize:  g.World.ChunkSize(),
			ChunkCount: g.World.ChunkCount(),
			Resident:   g.World.ResidentCount(),
		},
		Player: toPlayerView(g.Player),
		Logs:   g.DrainLogs(),
	}

	v := toVerificationView(g.Verification())
	resp.Verification = &v

	// Смотрим только на видимые клетки: их чанки уже созданы расчётом обзора,
	// так что снимок не создаёт новых чанков и не влияет на проверку.
	for _, p := range g.visible {
		resp.Map = append(resp.Map, toTileView(p, g.World.TileAt(p)))
		if it, ok := g.World.ItemAt(p); ok {
			resp.Entities = append(resp.Entities, toItemView(p, it))
		}
		if m := g.World.MonsterAt(p); m != nil {
			resp.Entities = append(resp.Entities, toMonsterView(m, m.ID == g.Companion))
		}
	}
	return resp
}

func toPoint(p domain.Point) api.PointView {
	return api.PointView{X: p.X, Y: p.Y}
}

func toTileView(p domain.Point, t domain.Tile) api.TileView {
	view := api.TileView{
		X:          p.X,
		Y:          p.Y,
		Symbol:     ".",
		Color:      t.Color.Hex(),
		IsVisible:  t.Visible,
		IsExplored: t.Explored,
	}
	if t.Kind == enums.TileTree {
		view.Symbol = "#"
		view.IsTree = true
	}
	return view
}

// toMonsterView конвертирует монстра в DTO для отправки наблюдателю.
func toMonsterView(m *domain.Monster, companion bool) api.EntityView {
	view := api.EntityView{
		ID:        m.ID.String(),
		Type:      "ENEMY",
		Name:      m.Kind.String(),
		Pos:       toPoint(m.Pos),
		Companion: companion,
	}
	if !m.IsHostile() {
		view.Type = "NPC"
	}
	view.Render.Symbol = string(m.Glyph.Char())
	view.Render.Color = m.Glyph.Color().Hex()
	return view
}

func toItemView(p domain.Point, it domain.Item) api.EntityView {
	view := api.EntityView{
		Type: "ITEM",
		Name: it.Kind.String(),
		Pos:  toPoint(p),
	}
	view.Render.Symbol = string(it.Glyph.Char())
	view.Render.Color = it.Glyph.Color().Hex()
	return view
}

func toPlayerView(p *domain.Player) *api.PlayerView {
	view := &api.PlayerView{
		Pos:       toPoint(p.Pos),
		Symbol:    string(p.Glyph.Char()),
		Color:     p.Glyph.Color().Hex(),
		Will:      p.Will,
		MaxWill:   p.MaxWill,
		Mind:      p.Mind,
		Tolerance: p.Tolerance,
		Kills:     p.Kills,
		IsDead:    p.Dead,
		Inventory: []api.ItemView{},
	}
	for _, kind := range enums.AllItemKinds {
		if n := p.CountItems(kind); n > 0 {
			view.Inventory = append(view.Inventory, api.ItemView{Kind: kind.String(), Count: n})
		}
	}
	return view
}

func toVerificationView(v domain.Verification) api.VerificationView {
	view := api.VerificationView{
		Turn:       v.Turn,
		ChunkCount: v.ChunkCount,
		PlayerPos:  toPoint(v.PlayerPos),
		Monsters:   make([]api.MonsterView, 0, len(v.Monsters)),
	}
	for _, m := range v.Monsters {
		view.Monsters = append(view.Monsters, api.MonsterView{
			Pos:      toPoint(m.Pos),
			ChunkPos: toPoint(m.ChunkPos),
			Kind:     m.Kind.String(),
		})
	}
	return view
}

// ChunkViews перечисляет созданные чанки для отладочного сервера.
func (g *Game) ChunkViews() []api.ChunkView {
	coords := g.World.PositionsOfAllChunks()
	out := make([]api.ChunkView, 0, len(coords))
	for _, c := range coords {
		out = append(out, api.ChunkView{X: c.X, Y: c.Y, Resident: g.World.IsResident(c)})
	}
	return out
}
