package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/internal/infrastructure/storage"
	"dose-response/internal/version"
	"dose-response/pkg/api"
	"dose-response/pkg/logger"
	"dose-response/pkg/utils"
)

// ErrDesync — воспроизведённое состояние разошлось с записанным.
var ErrDesync = errors.New("replay desync")

// Publisher получает снимки после каждого тика. Реализуется network.Broadcaster.
type Publisher interface {
	Publish(msg api.ServerResponse)
}

// ChunkPublisher дополнительно получает список созданных чанков.
type ChunkPublisher interface {
	PublishChunks(chunks []api.ChunkView)
}

// Mode — как сессия получает ввод.
type Mode uint8

const (
	// ModeLive — ввод приходит извне и никуда не пишется (продолженная игра).
	ModeLive Mode = iota
	// ModeRecording — ввод приходит извне и пишется в лог реплея.
	ModeRecording
	// ModeReplaying — ввод читается из лога, снимки сверяются.
	ModeReplaying
)

func (m Mode) String() string {
	switch m {
	case ModeRecording:
		return "recording"
	case ModeReplaying:
		return "replaying"
	default:
		return "live"
	}
}

// Desync — расхождение снимка при воспроизведении.
type Desync struct {
	// Index — номер записи в логе (без заголовка).
	Index    int
	TickID   int
	Recorded domain.Verification
	Live     domain.Verification
	Diff     string
}

func (d *Desync) Error() string {
	return fmt.Sprintf("%v at tick %d (record %d)", ErrDesync, d.TickID, d.Index)
}

func (d *Desync) Unwrap() error {
	return ErrDesync
}

var verificationOpts = cmp.Options{cmpopts.EquateEmpty()}

// Session ведёт одну игру: подаёт ввод в Game, пишет или сверяет реплей
// и отдаёт снимки наблюдателям.
type Session struct {
	ID   string
	Game *Game
	mode Mode

	rec *storage.Recorder

	replay  *domain.ReplayLog
	cursor  int
	desyncs []Desync
	halted  bool

	pub    Publisher
	logger *logrus.Entry
}

func newSession(g *Game, mode Mode, pub Publisher) *Session {
	id := utils.NewSessionID()
	s := &Session{
		ID:   id,
		Game: g,
		mode: mode,
		pub:  pub,
		logger: logger.Log.WithFields(logrus.Fields{
			"component":  "session",
			"session_id": id,
			"seed":       g.Seed,
			"mode":       mode.String(),
		}),
	}
	s.publish(api.TypeHello)
	return s
}

// NewSession начинает новую игру. Если rec не nil, ввод и снимки пишутся в лог реплея.
func NewSession(cfg Config, rec *storage.Recorder, pub Publisher) (*Session, error) {
	g, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	mode := ModeLive
	if rec != nil {
		mode = ModeRecording
		rec.WriteHeader(g.Seed, version.FormatVersion, version.Identifier())
	}
	s := newSession(g, mode, pub)
	s.rec = rec
	s.logger.WithField("replay", recorderPath(rec)).Info("Session started")
	return s, nil
}

// NewReplaySession воспроизводит лог. Сид берётся из заголовка лога.
func NewReplaySession(cfg Config, log *domain.ReplayLog, pub Publisher) (*Session, error) {
	cfg.Seed = log.Seed
	g, err := NewGame(cfg)
	if err != nil {
		return nil, err
	}
	s := newSession(g, ModeReplaying, pub)
	s.replay = log
	if custom := simulationOverrides(cfg); len(custom) > 0 {
		// Заголовок реплея их не хранит: они должны совпадать с настройками записи.
		s.logger.WithFields(custom).Warn("Replaying with non-default simulation settings")
	}
	s.logger.WithFields(logrus.Fields{
		"inputs":        log.InputCount(),
		"verifications": log.VerificationCount(),
	}).Info("Replay started")
	return s, nil
}

// ResumeSession продолжает загруженную игру. Продолженная игра не записывается.
func ResumeSession(g *Game, pub Publisher) *Session {
	s := newSession(g, ModeLive, pub)
	s.logger.WithFields(logrus.Fields{
		"turn": g.Turn,
		"tick": g.TickID,
	}).Info("Session resumed")
	return s
}

func (s *Session) Mode() Mode { return s.mode }

// Tick обрабатывает ввод одного тика. tick_id проставляется здесь.
func (s *Session) Tick(in domain.Input) error {
	if s.mode == ModeReplaying {
		return errors.New("tick: input comes from the replay log")
	}
	in.TickID = s.Game.TickID + 1

	// Ввод пишется до обработки: лог должен пережить падение внутри Step.
	if s.rec != nil {
		s.rec.LogInput(in)
	}

	turn := s.Game.Turn
	ended := s.Game.Ended()
	if err := s.Game.Step(in); err != nil {
		return err
	}
	if s.rec != nil && s.Game.Turn != turn && s.Game.Turn%s.Game.Config.VerifyEvery == 0 {
		s.rec.LogVerification(s.Game.Verification())
	}
	s.afterTick(ended)
	return nil
}

// ReplayStep воспроизводит один ввод из лога и сверяет идущие за ним снимки.
// Возвращает false, когда лог закончился.
func (s *Session) ReplayStep() (bool, error) {
	if s.mode != ModeReplaying {
		return false, errors.New("replay step: session is not replaying")
	}
	if s.halted {
		return false, nil
	}

	stepped := false
	for s.cursor < len(s.replay.Records) {
		rec := s.replay.Records[s.cursor]
		if rec.Kind == domain.RecordInput {
			if stepped {
				return true, nil
			}
			ended := s.Game.Ended()
			if err := s.Game.Step(*rec.Input); err != nil {
				return false, fmt.Errorf("replay record %d: %w", s.cursor, err)
			}
			s.afterTick(ended)
			stepped = true
			s.cursor++
			continue
		}

		s.cursor++
		if err := s.verify(s.cursor-1, *rec.Verification); err != nil {
			s.halted = true
			return false, err
		}
	}
	return false, nil
}

// RunReplay воспроизводит лог до конца или до отмены контекста.
func (s *Session) RunReplay(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := s.ReplayStep()
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	fields := logrus.Fields{
		"ticks":   s.Game.TickID,
		"turn":    s.Game.Turn,
		"desyncs": len(s.desyncs),
	}
	if len(s.desyncs) > 0 {
		s.logger.WithFields(fields).Warn("Replay finished with desyncs")
	} else {
		s.logger.WithFields(fields).Info("Replay finished")
	}
	return nil
}

func (s *Session) verify(index int, recorded domain.Verification) error {
	live := s.Game.Verification()
	recorded.SortMonsters()
	if cmp.Equal(recorded, live, verificationOpts) {
		return nil
	}

	d := Desync{
		Index:    index,
		TickID:   s.Game.TickID,
		Recorded: recorded,
		Live:     live,
		Diff:     cmp.Diff(recorded, live, verificationOpts),
	}
	s.desyncs = append(s.desyncs, d)
	s.logger.WithFields(logrus.Fields{
		"tick":     d.TickID,
		"record":   d.Index,
		"recorded": d.Recorded,
		"live":     d.Live,
		"diff":     d.Diff,
	}).Error("Replay desync")

	if s.Game.Config.HaltOnDesync {
		return &d
	}
	return nil
}

// Desyncs — все найденные расхождения.
func (s *Session) Desyncs() []Desync {
	return s.desyncs
}

func (s *Session) afterTick(wasEnded bool) {
	if !wasEnded && s.Game.Ended() {
		s.logger.WithFields(logrus.Fields{
			"turn": s.Game.Turn,
			"side": s.Game.Side.String(),
		}).Info("Game over")
		s.publish(api.TypeEnded)
		return
	}
	s.publish(api.TypeUpdate)
}

func (s *Session) publish(msgType string) {
	if s.pub == nil {
		return
	}
	s.pub.Publish(s.Game.BuildSnapshot(s.ID, msgType))
	if cp, ok := s.pub.(ChunkPublisher); ok {
		cp.PublishChunks(s.Game.ChunkViews())
	}
}

// Save сохраняет игру. Лог реплея при этом не дописывается.
func (s *Session) Save(svc *storage.SaveService) error {
	return SaveGame(s.Game, svc)
}

// Close дописывает финальный снимок в реплей и освобождает ресурсы.
func (s *Session) Close() error {
	var errs []error
	if s.rec != nil {
		s.rec.LogVerification(s.Game.Verification())
		if err := s.rec.Close(); err != nil {
			errs = append(errs, err)
		}
		s.rec = nil
	}
	if err := s.Game.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close chunk store: %w", err))
	}
	s.logger.WithFields(logrus.Fields{
		"ticks": s.Game.TickID,
		"turn":  s.Game.Turn,
	}).Info("Session closed")
	return errors.Join(errs...)
}

// simulationOverrides — настройки, влияющие на симуляцию, которые отличаются от значений по умолчанию.
func simulationOverrides(cfg Config) logrus.Fields {
	def := NewConfig()
	out := logrus.Fields{}
	if cfg.ChunkSize != def.ChunkSize {
		out["chunk_size"] = cfg.ChunkSize
	}
	if cfg.WorldSize != def.WorldSize {
		out["world_size"] = cfg.WorldSize
	}
	if cfg.VisionRadius != def.VisionRadius {
		out["vision_radius"] = cfg.VisionRadius
	}
	if cfg.ActiveRadius != def.ActiveRadius {
		out["active_radius"] = cfg.ActiveRadius
	}
	if cfg.Invincible {
		out["invincible"] = true
	}
	return out
}

func recorderPath(rec *storage.Recorder) string {
	if rec == nil {
		return ""
	}
	return rec.Path()
}
