package engine

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"dose-response/internal/core/types"
	"dose-response/internal/core/types/enums"
	"dose-response/internal/domain"
	"dose-response/internal/engine/handlers"
	"dose-response/internal/engine/handlers/actions"
	"dose-response/internal/systems"
	"dose-response/pkg/api"
	"dose-response/pkg/dungeon"
	"dose-response/pkg/logger"
	"dose-response/pkg/rng"
)

// ErrTickOrder — ввод пришёл не со следующим tick_id.
var ErrTickOrder = errors.New("input tick out of order")

// Side — чем закончилась (или не закончилась) игра.
type Side uint8

const (
	SidePlayer Side = iota
	SideVictory
)

func (s Side) String() string {
	if s == SideVictory {
		return "Victory"
	}
	return "Player"
}

// Status — стадия сессии.
type Status uint8

const (
	StatusInProgress Status = iota
	StatusEnded
)

func (s Status) String() string {
	if s == StatusEnded {
		return "Ended"
	}
	return "InProgress"
}

// Game — вся симуляция одной сессии. Однопоточная: Step вызывается только из игрового цикла.
type Game struct {
	Seed   uint32
	Config Config

	World  *domain.World
	Player *domain.Player
	// Rng — основной поток. Всё, что влияет на мир, тянет только из него.
	Rng *rng.Random
	// AudioRng — клон для косметики, снятый после создания игрока.
	AudioRng *rng.Random

	Turn   int
	TickID int
	Side   Side
	Status Status

	// Companion — NPC, за которым идёт победа. ID переживает переходы между чанками.
	Companion      types.MonsterID
	CompanionBonus enums.CompanionBonus

	Commands []domain.Command
	Effects  []domain.Effect
	Logs     []api.LogEntry

	visible []domain.Point
	closer  func() error
}

// NewGame создаёт новую игру. Создаётся только чанк точки появления.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	store, closer, err := openChunkStore(cfg)
	if err != nil {
		return nil, err
	}

	r := rng.FromSeed(cfg.Seed)
	spawn := domain.Point{}
	// Внешность игрока — первые вытягивания сессии.
	player := dungeon.CreatePlayer(spawn, r, cfg.Invincible)

	g := &Game{
		Seed:     cfg.Seed,
		Config:   cfg,
		World:    buildWorld(cfg, spawn, store),
		Player:   player,
		Rng:      r,
		AudioRng: r.Clone(),
		closer:   closer,
	}
	// Начальный запрос позиции игрока создаёт чанк появления.
	g.World.TileAt(player.Pos)

	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"seed":      cfg.Seed,
		"spawn":     spawn,
	}).Info("New game started")
	g.AddLog("Добро пожаловать. Держитесь.", handlers.MsgInfo)
	return g, nil
}

// Step обрабатывает один тик: ввод превращается в команды, команды исполняются,
// после каждого потраченного хода ходят монстры; затем пересчитывается обзор
// и мир сбрасывает лишние чанки.
func (g *Game) Step(in domain.Input) error {
	if in.TickID != g.TickID+1 {
		return fmt.Errorf("%w: expected %d, got %d", ErrTickOrder, g.TickID+1, in.TickID)
	}
	g.TickID = in.TickID
	g.advanceEffects()

	if g.Status == StatusEnded {
		return nil
	}

	g.Commands = append(g.Commands, DecodeInput(in, g.Player.Pos)...)
	for len(g.Commands) > 0 && g.Status != StatusEnded {
		cmd := g.Commands[0]
		g.Commands = g.Commands[1:]
		if err := g.execute(cmd); err != nil {
			return fmt.Errorf("tick %d: %w", in.TickID, err)
		}
	}

	g.updateFOV()
	g.World.Compact()
	return nil
}

func (g *Game) execute(cmd domain.Command) error {
	h, ok := actions.Registry[cmd.Kind]
	if !ok {
		return fmt.Errorf("no handler for command %s", cmd.Kind)
	}

	ctx := handlers.Context{
		World:     g.World,
		Player:    g.Player,
		Rng:       g.Rng,
		Companion: &g.Companion,
		Bonus:     &g.CompanionBonus,
	}
	res, err := h(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command %s: %w", cmd.Kind, err)
	}

	if res.Msg != "" {
		g.AddLog(res.Msg, res.MsgType)
	}
	if res.Effect != nil {
		g.Effects = append(g.Effects, *res.Effect)
	}
	if res.Acted {
		g.endPlayerTurn()
	}
	return nil
}

// endPlayerTurn завершает ход игрока: ломка, ходы монстров, проверка конца игры.
func (g *Game) endPlayerTurn() {
	g.Turn++

	// Спутник с этим бонусом вдвое замедляет ломку.
	if g.CompanionBonus != enums.BonusHalveExhaustion || g.Turn%2 == 0 {
		g.Player.Withdraw()
	}
	if g.Player.Mind <= domain.PlayerMinMind {
		g.Player.LoseWill(1)
	}

	// Спутник с этим бонусом даёт игроку лишний ход: монстры ходят через ход.
	if g.CompanionBonus != enums.BonusExtraActionPoint || g.Turn%2 == 0 {
		g.processMonsterTurns()
	}

	g.checkGameOver()
}

func (g *Game) checkGameOver() {
	if g.Player.Dead {
		g.Status = StatusEnded
		g.AddLog("Вы сдались.", handlers.MsgCombat)
		g.Effects = append(g.Effects, domain.NewScreenFade(0, 10))
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"turn":      g.Turn,
		}).Info("Player died")
		return
	}

	if g.Companion.IsNil() || g.Player.Will < g.Player.MaxWill {
		return
	}
	if m := g.World.Monster(g.Companion); m.IsAlive() && m.Pos.IsAdjacent(g.Player.Pos) {
		g.Side = SideVictory
		g.Status = StatusEnded
		g.AddLog("Вы выбрались вместе.", handlers.MsgInfo)
		logger.Log.WithFields(logrus.Fields{
			"component": "game",
			"turn":      g.Turn,
		}).Info("Victory")
	}
}

// updateFOV гасит клетки прошлого обзора и зажигает текущие.
func (g *Game) updateFOV() {
	for _, p := range g.visible {
		g.World.SetVisible(p, false)
	}
	g.visible = systems.ComputeFOV(g.World, g.Player.Pos, g.Config.VisionRadius)
	for _, p := range g.visible {
		g.World.SetVisible(p, true)
	}
}

func (g *Game) advanceEffects() {
	kept := g.Effects[:0]
	for i := range g.Effects {
		if !g.Effects[i].Advance() {
			kept = append(kept, g.Effects[i])
		}
	}
	g.Effects = kept
}

// Verification строит снимок состояния для сверки реплеев.
// Использует только индекс монстров и не создаёт чанков.
func (g *Game) Verification() domain.Verification {
	return domain.Verification{
		Turn:       g.Turn,
		ChunkCount: g.World.ChunkCount(),
		PlayerPos:  g.Player.Pos,
		Monsters:   g.World.LivingMonsters(),
	}
}

// Ended — игра закончилась смертью или победой.
func (g *Game) Ended() bool {
	return g.Status == StatusEnded
}

// Close освобождает хранилище вытесненных чанков.
func (g *Game) Close() error {
	if g.closer == nil {
		return nil
	}
	err := g.closer()
	g.closer = nil
	return err
}
