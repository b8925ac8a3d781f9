package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"dose-response/internal/domain"
	"dose-response/pkg/logger"
)

// Теги строк лога реплея.
const (
	TagInput        = "input"
	TagVerification = "verification"
)

type taggedInput struct {
	Type string `json:"type"`
	domain.Input
}

type taggedVerification struct {
	Type string `json:"type"`
	domain.Verification
}

// ReplayPath возвращает путь нового лога реплея в каталоге dir.
func ReplayPath(dir string, now time.Time) string {
	return filepath.Join(dir, "replay-"+now.UTC().Format("2006-01-02T15-04-05.000"))
}

// Recorder пишет лог реплея: три строки заголовка, затем по строке JSON на запись.
//
// Запись best-effort: если файл не открылся или запись упала, ошибка логируется,
// а игра продолжается без реплея.
type Recorder struct {
	w      io.Writer
	closer io.Closer
	path   string
	lines  int
}

// NewRecorder открывает файл лога. При ошибке возвращает рекордер, пишущий в никуда.
func NewRecorder(path string) *Recorder {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logRecorderError(path, "Failed to create replay directory", err)
		return &Recorder{w: io.Discard, path: path}
	}
	f, err := os.Create(path)
	if err != nil {
		logRecorderError(path, "Failed to create replay file, recording disabled", err)
		return &Recorder{w: io.Discard, path: path}
	}
	return &Recorder{w: f, closer: f, path: path}
}

// NewRecorderTo пишет лог в произвольный writer.
func NewRecorderTo(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Path — путь файла лога (пусто для NewRecorderTo).
func (r *Recorder) Path() string {
	return r.path
}

// WriteHeader пишет сид, версию формата и идентификатор сборки.
func (r *Recorder) WriteHeader(seed uint32, formatVersion, buildID string) {
	r.writeLine([]byte(strconv.FormatUint(uint64(seed), 10)))
	r.writeLine([]byte(formatVersion))
	r.writeLine([]byte(buildID))
}

// LogInput записывает ввод тика. Вызывается до обработки тика.
func (r *Recorder) LogInput(in domain.Input) {
	r.writeJSON(taggedInput{Type: TagInput, Input: in})
}

// LogVerification записывает снимок состояния.
func (r *Recorder) LogVerification(v domain.Verification) {
	if v.Monsters == nil {
		v.Monsters = []domain.MonsterSnapshot{}
	}
	r.writeJSON(taggedVerification{Type: TagVerification, Verification: v})
}

func (r *Recorder) writeJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logRecorderError(r.path, "Failed to encode replay record", err)
		return
	}
	r.writeLine(data)
}

func (r *Recorder) writeLine(data []byte) {
	// Пишем строку одним вызовом, чтобы при падении процесса лог обрывался на границе записи.
	line := make([]byte, 0, len(data)+1)
	line = append(append(line, data...), '\n')
	if _, err := r.w.Write(line); err != nil {
		logRecorderError(r.path, "Failed to write replay record", err)
		return
	}
	r.lines++
}

// Lines — сколько строк записано.
func (r *Recorder) Lines() int {
	return r.lines
}

func (r *Recorder) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	if err != nil {
		return fmt.Errorf("close replay %s: %w", r.path, err)
	}
	return nil
}

func logRecorderError(path, msg string, err error) {
	logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"path":      path,
		"error":     err,
	}).Error(msg)
}
