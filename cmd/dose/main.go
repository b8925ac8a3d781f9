package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"dose-response/internal/agent"
	"dose-response/internal/domain"
	"dose-response/internal/engine"
	"dose-response/internal/infrastructure/storage"
	"dose-response/internal/network"
	"dose-response/internal/server"
	"dose-response/internal/version"
	"dose-response/pkg/logger"
)

func init() {
	logger.Init()
}

type options struct {
	seed       uint
	replayPath string
	fresh      bool
	save       bool
	ticks      int
	tickDelay  time.Duration
	botSeed    uint
	debugAddr  string
	invincible bool
	halt       bool
}

func main() {
	// 1. Парсинг конфигурации: окружение, поверх него флаги
	var opts options
	flag.UintVar(&opts.seed, "seed", 0, "World seed (0 keeps DOSE_SEED or picks a random one)")
	flag.StringVar(&opts.replayPath, "replay", "", "Path to a replay log to verify")
	flag.BoolVar(&opts.fresh, "new", false, "Ignore the saved game and start a new one")
	flag.BoolVar(&opts.save, "save", false, "Save the game on exit instead of finishing it")
	flag.IntVar(&opts.ticks, "ticks", 1000, "How many ticks the bot plays")
	flag.DurationVar(&opts.tickDelay, "tick-delay", 0, "Pause between bot ticks (for spectators)")
	flag.UintVar(&opts.botSeed, "bot-seed", 1, "Seed of the bot's own random generator")
	flag.StringVar(&opts.debugAddr, "debug", "", "Debug server address, e.g. :8080")
	flag.BoolVar(&opts.invincible, "invincible", false, "Player never dies")
	flag.BoolVar(&opts.halt, "halt-on-desync", false, "Stop the replay at the first desync")
	flag.Parse()

	logger.Log.Info("Starting Dose Response...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	applyFlags(&cfg, opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := network.NewBroadcaster()
	if cfg.DebugAddr != "" {
		srv := server.New(hub, cfg.DebugAddr)
		go func() {
			if err := srv.Run(ctx); err != nil {
				logger.Log.WithError(err).Error("Debug server stopped")
			}
		}()
	}

	// РЕЖИМ РЕПЛЕЯ
	if opts.replayPath != "" {
		os.Exit(runReplay(ctx, cfg, opts.replayPath, hub))
	}

	sess := startSession(cfg, opts, hub)
	bot := agent.NewBot("headless", uint32(opts.botSeed))

	// 2. Игровой цикл: бот играет, пока не кончатся тики или не придёт сигнал
	err = bot.Play(ctx, opts.ticks, hub.Latest, func(in domain.Input) error {
		if err := sess.Tick(in); err != nil {
			return err
		}
		if sess.Game.Ended() {
			return errGameOver
		}
		if opts.tickDelay > 0 {
			select {
			case <-time.After(opts.tickDelay):
			case <-ctx.Done():
			}
		}
		return nil
	})
	switch {
	case err == nil, errors.Is(err, errGameOver):
	case errors.Is(err, context.Canceled):
		logger.Log.Info("Interrupted")
	default:
		logger.Log.WithError(err).Error("Simulation failed")
	}

	// 3. Сохранение или завершение
	if opts.save && !sess.Game.Ended() {
		if err := sess.Save(storage.NewSaveService(cfg.SavePath)); err != nil {
			logger.Log.WithError(err).Error("Failed to save the game")
		}
	}
	if err := sess.Close(); err != nil {
		logger.Log.WithError(err).Warn("Session closed with errors")
	}

	logger.Log.WithFields(logrus.Fields{
		"turn":  sess.Game.Turn,
		"ticks": sess.Game.TickID,
		"side":  sess.Game.Side.String(),
		"kills": sess.Game.Player.Kills,
	}).Info("Done.")
}

var errGameOver = errors.New("game over")

func applyFlags(cfg *engine.Config, opts options) {
	if opts.seed != 0 {
		cfg.Seed = uint32(opts.seed)
	}
	if opts.debugAddr != "" {
		cfg.DebugAddr = opts.debugAddr
	}
	if opts.invincible {
		cfg.Invincible = true
	}
	if opts.halt {
		cfg.HaltOnDesync = true
	}
}

// startSession продолжает сохранённую игру или начинает новую с записью реплея.
func startSession(cfg engine.Config, opts options, hub *network.Broadcaster) *engine.Session {
	if !opts.fresh {
		g, err := engine.LoadGame(cfg, storage.NewSaveService(cfg.SavePath))
		switch {
		case err == nil:
			return engine.ResumeSession(g, hub)
		case errors.Is(err, storage.ErrNoSave):
		default:
			logger.Log.WithError(err).Warn("Failed to load the saved game, starting a new one")
		}
	}

	path := cfg.ReplayFile
	if path == "" {
		path = storage.ReplayPath(cfg.ReplayDir, time.Now())
	}
	logger.Log.WithFields(logrus.Fields{
		"seed":   cfg.Seed,
		"replay": path,
	}).Info("Mode: new game")

	sess, err := engine.NewSession(cfg, storage.NewRecorder(path), hub)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to start the game")
	}
	return sess
}

// runReplay воспроизводит лог и возвращает код выхода: 1 при ошибке или рассинхроне.
func runReplay(ctx context.Context, cfg engine.Config, path string, hub *network.Broadcaster) int {
	logger.Log.WithField("replay", path).Info("Mode: replay verification")

	log, err := storage.OpenReplay(path)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to load replay")
		return 1
	}
	sess, err := engine.NewReplaySession(cfg, log, hub)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to start replay")
		return 1
	}
	defer sess.Close()

	if err := sess.RunReplay(ctx); err != nil {
		logger.Log.WithError(err).Error("Replay stopped")
		return 1
	}
	if len(sess.Desyncs()) > 0 {
		return 1
	}
	return 0
}
