package engine

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"dose-response/internal/domain"
	"dose-response/internal/infrastructure/storage"
	"dose-response/internal/network"
	"dose-response/internal/version"
	"dose-response/pkg/api"
)

// record играет ботом с записью и возвращает разобранный лог.
func record(t *testing.T, cfg Config, ticks int) *domain.ReplayLog {
	t.Helper()
	var buf bytes.Buffer
	s, err := NewSession(cfg, storage.NewRecorderTo(&buf), nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	playBot(t, s, 11, ticks)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	log, err := storage.ParseReplay(&buf)
	if err != nil {
		t.Fatalf("ParseReplay() error = %v", err)
	}
	return log
}

func TestSession_RecordsHeaderAndFinalSnapshot(t *testing.T) {
	log := record(t, testConfig(t, 518723646), 0)

	if log.Seed != 518723646 || log.Version != version.FormatVersion || log.Commit != version.Identifier() {
		t.Errorf("header = %d %q %q", log.Seed, log.Version, log.Commit)
	}
	if log.InputCount() != 0 {
		t.Errorf("InputCount() = %d, want 0", log.InputCount())
	}
	last, ok := log.LastVerification()
	if !ok {
		t.Fatal("no final verification written on close")
	}
	if last.ChunkCount != 1 || last.Turn != 0 || last.PlayerPos != (domain.Point{}) {
		t.Errorf("final verification = %+v", last)
	}
}

func TestSession_ReplayRoundTrip(t *testing.T) {
	cfg := testConfig(t, 2024)
	log := record(t, cfg, 200)
	if log.InputCount() != 200 {
		t.Fatalf("InputCount() = %d, want 200", log.InputCount())
	}
	if log.VerificationCount() < 1 {
		t.Fatal("log has no verifications")
	}

	hub := network.NewBroadcaster()
	replay, err := NewReplaySession(cfg, log, hub)
	if err != nil {
		t.Fatalf("NewReplaySession() error = %v", err)
	}
	defer replay.Close()

	if err := replay.RunReplay(context.Background()); err != nil {
		t.Fatalf("RunReplay() error = %v", err)
	}
	if n := len(replay.Desyncs()); n != 0 {
		t.Fatalf("got %d desyncs, first: %s", n, replay.Desyncs()[0].Diff)
	}
	if replay.Game.TickID != 200 {
		t.Errorf("TickID = %d, want 200", replay.Game.TickID)
	}

	latest, ok := hub.Latest()
	if !ok || latest.Tick != 200 || latest.SessionID != replay.ID {
		t.Errorf("latest snapshot = tick %d session %q (ok=%v)", latest.Tick, latest.SessionID, ok)
	}
	if latest.Type != api.TypeUpdate && latest.Type != api.TypeEnded {
		t.Errorf("latest snapshot type = %q", latest.Type)
	}

	if err := replay.Tick(domain.Input{}); err == nil {
		t.Error("Tick() on a replay session must fail")
	}
}

func tamper(log *domain.ReplayLog) {
	for _, rec := range log.Records {
		if rec.Kind == domain.RecordVerification {
			rec.Verification.PlayerPos.X += 100
			return
		}
	}
}

func TestSession_ReplayDetectsDesync(t *testing.T) {
	cfg := testConfig(t, 31337)

	t.Run("collects", func(t *testing.T) {
		log := record(t, cfg, 50)
		tamper(log)

		replay, err := NewReplaySession(cfg, log, nil)
		if err != nil {
			t.Fatalf("NewReplaySession() error = %v", err)
		}
		defer replay.Close()

		if err := replay.RunReplay(context.Background()); err != nil {
			t.Fatalf("RunReplay() error = %v", err)
		}
		if len(replay.Desyncs()) != 1 {
			t.Fatalf("got %d desyncs, want 1", len(replay.Desyncs()))
		}
		d := replay.Desyncs()[0]
		if d.Diff == "" || d.Recorded.PlayerPos == d.Live.PlayerPos {
			t.Errorf("desync report is incomplete: %+v", d)
		}
		if replay.Game.TickID != 50 {
			t.Errorf("replay stopped at tick %d, want 50", replay.Game.TickID)
		}
	})

	t.Run("halts", func(t *testing.T) {
		log := record(t, cfg, 50)
		tamper(log)

		halting := cfg
		halting.HaltOnDesync = true
		replay, err := NewReplaySession(halting, log, nil)
		if err != nil {
			t.Fatalf("NewReplaySession() error = %v", err)
		}
		defer replay.Close()

		err = replay.RunReplay(context.Background())
		if !errors.Is(err, ErrDesync) {
			t.Fatalf("RunReplay() error = %v, want ErrDesync", err)
		}
		var d *Desync
		if !errors.As(err, &d) || d.Diff == "" {
			t.Errorf("error does not carry the desync report: %v", err)
		}
		if more, err := replay.ReplayStep(); more || err != nil {
			t.Errorf("ReplayStep() after halt = %v, %v", more, err)
		}
	})
}

func TestSession_VerifyEvery(t *testing.T) {
	cfg := testConfig(t, 99)
	cfg.VerifyEvery = 1000
	log := record(t, cfg, 40)
	// Ходов меньше тысячи: остаётся только финальный снимок при закрытии.
	if got := log.VerificationCount(); got != 1 {
		t.Errorf("VerificationCount() = %d, want 1", got)
	}
}

func TestSession_ReplayCancelled(t *testing.T) {
	cfg := testConfig(t, 5)
	log := record(t, cfg, 10)
	replay, err := NewReplaySession(cfg, log, nil)
	if err != nil {
		t.Fatalf("NewReplaySession() error = %v", err)
	}
	defer replay.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := replay.RunReplay(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("RunReplay() error = %v, want context.Canceled", err)
	}
}
