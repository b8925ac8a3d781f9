package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"dose-response/internal/domain"
	"dose-response/internal/version"
	"dose-response/pkg/logger"
)

// ErrCorruptReplay оборачивает любую структурную ошибку лога реплея.
var ErrCorruptReplay = errors.New("corrupt replay log")

const maxReplayLine = 8 * 1024 * 1024

func corrupt(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCorruptReplay, fmt.Sprintf(format, args...))
}

// OpenReplay читает лог реплея с диска. Несовпадение версии или сборки только логируется.
func OpenReplay(path string) (*domain.ReplayLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	defer f.Close()

	log, err := ParseReplay(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	fields := logrus.Fields{
		"component": "replay",
		"path":      path,
	}
	if log.Version != version.FormatVersion {
		logger.Log.WithFields(fields).WithFields(logrus.Fields{
			"replay_version":  log.Version,
			"current_version": version.FormatVersion,
		}).Warn("Replay was recorded by a different format version, it may desync")
	}
	if log.Commit != version.Identifier() {
		logger.Log.WithFields(fields).WithFields(logrus.Fields{
			"replay_build":  log.Commit,
			"current_build": version.Identifier(),
		}).Warn("Replay was recorded by a different build")
	}
	return log, nil
}

// ParseReplay разбирает лог целиком. Любая структурная ошибка обнаруживается здесь,
// до начала симуляции.
func ParseReplay(r io.Reader) (*domain.ReplayLog, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxReplayLine)

	header := make([]string, 0, 3)
	for len(header) < 3 && sc.Scan() {
		header = append(header, strings.TrimSpace(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read replay header: %w", err)
	}

	switch len(header) {
	case 0:
		return nil, corrupt("replay log is empty")
	case 1:
		return nil, corrupt("missing version line")
	case 2:
		return nil, corrupt("missing build identifier line")
	}

	seed, err := strconv.ParseUint(header[0], 10, 32)
	if err != nil {
		return nil, corrupt("invalid seed %q", header[0])
	}

	log := &domain.ReplayLog{
		Seed:    uint32(seed),
		Version: header[1],
		Commit:  header[2],
	}

	lineNo := 3
	inputs := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if rec.Kind == domain.RecordInput {
			if rec.Input.TickID <= 0 {
				return nil, fmt.Errorf("line %d: %w", lineNo, corrupt("tick_id must be positive, got %d", rec.Input.TickID))
			}
			if rec.Input.TickID != inputs+1 {
				return nil, fmt.Errorf("line %d: %w", lineNo,
					corrupt("tick_id gap: expected %d, got %d", inputs+1, rec.Input.TickID))
			}
			inputs++
		}
		log.Records = append(log.Records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read replay line %d: %w", lineNo+1, err)
	}
	return log, nil
}

func parseRecord(line []byte) (domain.ReplayRecord, error) {
	if !gjson.ValidBytes(line) {
		return domain.ReplayRecord{}, corrupt("not valid JSON")
	}

	if tag := gjson.GetBytes(line, "type"); tag.Exists() {
		switch tag.String() {
		case TagInput:
			return decodeInput(line)
		case TagVerification:
			return decodeVerification(line)
		default:
			return domain.ReplayRecord{}, corrupt("unknown record type %q", tag.String())
		}
	}

	// Старые логи без тега: сначала пробуем ввод, затем снимок.
	if hasFields(line, "tick_id", "keys", "mouse") {
		if rec, err := decodeInput(line); err == nil {
			return rec, nil
		}
	}
	if hasFields(line, "turn", "chunk_count", "player_pos", "monsters") {
		return decodeVerification(line)
	}
	return domain.ReplayRecord{}, corrupt("line is neither an input nor a verification")
}

func hasFields(line []byte, names ...string) bool {
	for _, r := range gjson.GetManyBytes(line, names...) {
		if !r.Exists() {
			return false
		}
	}
	return true
}

func strictDecode(line []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func decodeInput(line []byte) (domain.ReplayRecord, error) {
	var in taggedInput
	if err := strictDecode(line, &in); err != nil {
		return domain.ReplayRecord{}, corrupt("bad input record: %v", err)
	}
	return domain.ReplayRecord{Kind: domain.RecordInput, Input: &in.Input}, nil
}

func decodeVerification(line []byte) (domain.ReplayRecord, error) {
	var v taggedVerification
	if err := strictDecode(line, &v); err != nil {
		return domain.ReplayRecord{}, corrupt("bad verification record: %v", err)
	}
	if v.Monsters == nil {
		v.Monsters = []domain.MonsterSnapshot{}
	}
	return domain.ReplayRecord{Kind: domain.RecordVerification, Verification: &v.Verification}, nil
}
