package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"dose-response/pkg/api"
	"dose-response/pkg/logger"
)

// maxLogs — сколько сообщений держать до того, как их заберёт наблюдатель.
const maxLogs = 100

// AddLog добавляет сообщение в игровой лог. Лог не входит в снимки и сохранения.
func (g *Game) AddLog(text, logType string) {
	g.Logs = append(g.Logs, api.LogEntry{
		ID:        fmt.Sprintf("%d_%d", g.TickID, len(g.Logs)),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
	})
	if len(g.Logs) > maxLogs {
		g.Logs = g.Logs[len(g.Logs)-maxLogs:]
	}
	logger.Log.WithFields(logrus.Fields{
		"tick":      g.TickID,
		"component": "game_log",
		"log_type":  logType,
	}).Debug(text)
}

// DrainLogs возвращает накопленные сообщения и очищает лог.
func (g *Game) DrainLogs() []api.LogEntry {
	logs := g.Logs
	g.Logs = nil
	return logs
}
