package agent

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dose-response/internal/domain"
	"dose-response/pkg/api"
	"dose-response/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Discard()
	os.Exit(m.Run())
}

func TestBot_SameSeedSameInputs(t *testing.T) {
	a := NewBot("a", 42)
	b := NewBot("b", 42)
	for i := 0; i < 200; i++ {
		got, want := a.Next(nil), b.Next(nil)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("input %d differs (-want +got):\n%s", i, diff)
		}
	}
}

func TestBot_Decisions(t *testing.T) {
	tests := []struct {
		name  string
		state api.ServerResponse
		want  domain.KeyCode
	}{
		{
			name: "attacks adjacent enemy",
			state: api.ServerResponse{
				Player: &api.PlayerView{Pos: api.PointView{X: 5, Y: 5}, Mind: 20},
				Entities: []api.EntityView{
					{Type: "NPC", Pos: api.PointView{X: 4, Y: 5}},
					{Type: "ENEMY", Pos: api.PointView{X: 6, Y: 6}},
				},
			},
			want: domain.KeyNumPad3,
		},
		{
			name: "takes a dose when withdrawal is close",
			state: api.ServerResponse{
				Player: &api.PlayerView{
					Mind:      2,
					Inventory: []api.ItemView{{Kind: "Dose", Count: 1}},
				},
				Entities: []api.EntityView{{Type: "ENEMY", Pos: api.PointView{X: 1, Y: 0}}},
			},
			want: domain.KeyD2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewBot("t", 1).Next(&tt.state)
			if len(in.Keys) != 1 || in.Keys[0].Code != tt.want {
				t.Errorf("Next() = %+v, want key %s", in, tt.want)
			}
		})
	}
}

func TestBot_Play(t *testing.T) {
	bot := NewBot("p", 7)
	calls := 0
	latest := func() (api.ServerResponse, bool) { return api.ServerResponse{}, false }
	err := bot.Play(context.Background(), 25, latest, func(domain.Input) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if calls != 25 {
		t.Errorf("tick called %d times, want 25", calls)
	}

	boom := errors.New("boom")
	err = bot.Play(context.Background(), 5, latest, func(domain.Input) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("Play() error = %v, want %v", err, boom)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := bot.Play(ctx, 5, latest, func(domain.Input) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Errorf("Play() on cancelled context = %v", err)
	}
}
