package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"

	"dose-response/internal/network"
	"dose-response/internal/version"
	"dose-response/pkg/api"
	"dose-response/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Discard()
	os.Exit(m.Run())
}

func sampleSnapshot(tick int) api.ServerResponse {
	return api.ServerResponse{
		Type:      api.TypeUpdate,
		SessionID: "s1",
		Seed:      42,
		Tick:      tick,
		Turn:      tick / 2,
		Verification: &api.VerificationView{
			Turn:       tick / 2,
			ChunkCount: 4,
			PlayerPos:  api.PointView{X: 1, Y: -2},
			Monsters:   []api.MonsterView{{Pos: api.PointView{X: 3, Y: 3}, Kind: "Anxiety"}},
		},
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	hub := network.NewBroadcaster()
	h := New(hub, ":0").Routes()

	t.Run("health", func(t *testing.T) {
		rec := get(t, h, "/health")
		if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
			t.Errorf("/health = %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("version", func(t *testing.T) {
		rec := get(t, h, "/version")
		var info api.VersionInfo
		if err := json.NewDecoder(rec.Body).Decode(&info); err != nil {
			t.Fatalf("decode /version: %v", err)
		}
		if info.FormatVersion != version.FormatVersion || info.Build != version.Identifier() {
			t.Errorf("/version = %+v", info)
		}
	})

	t.Run("nothing published", func(t *testing.T) {
		if rec := get(t, h, "/debug/verification"); rec.Code != http.StatusNotFound {
			t.Errorf("/debug/verification = %d, want 404", rec.Code)
		}
		if rec := get(t, h, "/debug/chunks"); strings.TrimSpace(rec.Body.String()) != "[]" {
			t.Errorf("/debug/chunks = %q, want []", rec.Body.String())
		}
	})

	t.Run("after publish", func(t *testing.T) {
		snap := sampleSnapshot(10)
		hub.Publish(snap)
		hub.PublishChunks([]api.ChunkView{{X: 0, Y: 0, Resident: true}, {X: -1, Y: 0}})

		rec := get(t, h, "/debug/verification")
		var v api.VerificationView
		if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
			t.Fatalf("decode verification: %v", err)
		}
		if diff := cmp.Diff(*snap.Verification, v); diff != "" {
			t.Errorf("verification mismatch (-want +got):\n%s", diff)
		}

		rec = get(t, h, "/debug/chunks")
		var chunks []api.ChunkView
		if err := json.NewDecoder(rec.Body).Decode(&chunks); err != nil {
			t.Fatalf("decode chunks: %v", err)
		}
		if len(chunks) != 2 || !chunks[0].Resident || chunks[1].Resident {
			t.Errorf("chunks = %+v", chunks)
		}
	})
}

func TestWebSocket_StreamsSnapshots(t *testing.T) {
	hub := network.NewBroadcaster()
	hub.Publish(sampleSnapshot(3))

	ts := httptest.NewServer(New(hub, "").Routes())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var hello api.ServerResponse
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read hello: %v", err)
	}
	if hello.Type != api.TypeHello || hello.Tick != 3 {
		t.Errorf("hello = type %q tick %d", hello.Type, hello.Tick)
	}

	// Клиент зарегистрирован до отправки приветствия, так что следующий снимок до него дойдёт.
	hub.Publish(sampleSnapshot(4))
	var update api.ServerResponse
	if err := conn.ReadJSON(&update); err != nil {
		t.Fatalf("read update: %v", err)
	}
	if update.Type != api.TypeUpdate || update.Tick != 4 {
		t.Errorf("update = type %q tick %d", update.Type, update.Tick)
	}
}
