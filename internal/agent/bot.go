package agent

import (
	"context"

	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/pkg/api"
	"dose-response/pkg/logger"
	"dose-response/pkg/rng"
)

// Bot — «игрок-компьютер» для headless-прогонов и тестов.
// Он смотрит на снимок, который получают наблюдатели, и выдаёт ввод следующего тика.
// Все случайные решения берутся из собственного генератора бота, поэтому бот
// с тем же сидом на той же игре выдаёт тот же ввод.
//
// Жизненный цикл:
//  1. NewBot -> собственный rng из сида.
//  2. Play -> на каждом тике берёт последний снимок, вызывает Next и отдаёт ввод сессии.
//  3. Next -> разбирает снимок и решает, что нажать.
type Bot struct {
	Name string
	rng  *rng.Random
	log  *logrus.Entry
}

type action uint8

const (
	actionIdle action = iota
	actionWalk
	actionUseItem
	actionClick
)

// Веса случайного поведения, когда рядом нет ничего интересного.
var behaviour = []rng.Weighted[action]{
	{Value: actionWalk, Weight: 80},
	{Value: actionIdle, Weight: 10},
	{Value: actionUseItem, Weight: 5},
	{Value: actionClick, Weight: 5},
}

var walkKeys = []domain.KeyCode{
	domain.KeyNumPad1, domain.KeyNumPad2, domain.KeyNumPad3, domain.KeyNumPad4,
	domain.KeyNumPad6, domain.KeyNumPad7, domain.KeyNumPad8, domain.KeyNumPad9,
	domain.KeyUp, domain.KeyDown, domain.KeyLeft, domain.KeyRight,
	domain.KeyH, domain.KeyJ, domain.KeyK, domain.KeyL,
}

var itemKeys = []domain.KeyCode{domain.KeyD1, domain.KeyD2, domain.KeyD3, domain.KeyD4, domain.KeyD5}

// directionKeys — клавиша цифрового блока для шага (dx, dy).
var directionKeys = map[domain.Point]domain.KeyCode{
	{X: -1, Y: -1}: domain.KeyNumPad7,
	{X: 0, Y: -1}:  domain.KeyNumPad8,
	{X: 1, Y: -1}:  domain.KeyNumPad9,
	{X: -1, Y: 0}:  domain.KeyNumPad4,
	{X: 1, Y: 0}:   domain.KeyNumPad6,
	{X: -1, Y: 1}:  domain.KeyNumPad1,
	{X: 0, Y: 1}:   domain.KeyNumPad2,
	{X: 1, Y: 1}:   domain.KeyNumPad3,
}

// lowMind — ниже этого бот принимает дозу, если она есть.
const lowMind = 5

func NewBot(name string, seed uint32) *Bot {
	return &Bot{
		Name: name,
		rng:  rng.FromSeed(seed),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "bot",
			"bot":       name,
			"seed":      seed,
		}),
	}
}

// Play прогоняет ticks тиков. latest возвращает последний снимок (false, если его ещё нет),
// tick передаёт ввод симуляции.
func (b *Bot) Play(ctx context.Context, ticks int, latest func() (api.ServerResponse, bool), tick func(domain.Input) error) error {
	b.log.WithField("ticks", ticks).Info("Bot started")
	for i := 0; i < ticks; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var in domain.Input
		if state, ok := latest(); ok {
			in = b.Next(&state)
		} else {
			in = b.Next(nil)
		}
		if err := tick(in); err != nil {
			return err
		}
	}
	b.log.Info("Bot finished")
	return nil
}

// Next решает, какой ввод отправить на основе снимка. state может быть nil.
func (b *Bot) Next(state *api.ServerResponse) domain.Input {
	// --- Осмысленные решения по снимку ---
	if state != nil && state.Player != nil && !state.Player.IsDead {
		me := state.Player
		if me.Mind <= lowMind && hasItem(me, "Dose") {
			return keyInput(domain.KeyD2)
		}
		if key, ok := b.attackKey(state); ok {
			return keyInput(key)
		}
	}

	// --- Случайное поведение ---
	switch rng.WeightedChoice(b.rng, behaviour) {
	case actionWalk:
		return keyInput(rng.ChooseWithFallback(b.rng, walkKeys, domain.KeyUp))
	case actionUseItem:
		return keyInput(rng.ChooseWithFallback(b.rng, itemKeys, domain.KeyD1))
	case actionClick:
		return b.clickInput(state)
	default:
		return domain.Input{}
	}
}

// attackKey ищет видимого врага рядом с игроком и возвращает клавишу шага в него.
func (b *Bot) attackKey(state *api.ServerResponse) (domain.KeyCode, bool) {
	me := state.Player.Pos
	for _, ev := range state.Entities {
		if ev.Type != "ENEMY" {
			continue
		}
		d := domain.Point{X: ev.Pos.X - me.X, Y: ev.Pos.Y - me.Y}
		if key, ok := directionKeys[d]; ok {
			return key, true
		}
	}
	return "", false
}

// clickInput кликает по случайной соседней клетке. Без снимка клик уходит в никуда.
func (b *Bot) clickInput(state *api.ServerResponse) domain.Input {
	var origin domain.Point
	if state != nil && state.Player != nil {
		origin = domain.Point{X: state.Player.Pos.X, Y: state.Player.Pos.Y}
	}
	dx := b.rng.RangeInclusive(-1, 1)
	dy := b.rng.RangeInclusive(-1, 1)
	return domain.Input{
		Mouse: domain.Mouse{
			TilePos:     origin.Shift(dx, dy),
			LeftClicked: true,
		},
	}
}

func hasItem(p *api.PlayerView, kind string) bool {
	for _, it := range p.Inventory {
		if it.Kind == kind && it.Count > 0 {
			return true
		}
	}
	return false
}

func keyInput(code domain.KeyCode) domain.Input {
	return domain.Input{Keys: []domain.Key{{Code: code}}}
}
