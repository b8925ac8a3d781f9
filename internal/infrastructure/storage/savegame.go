package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"dose-response/internal/version"
	"dose-response/pkg/logger"
)

// ErrNoSave — файла сохранения нет.
var ErrNoSave = errors.New("no saved game")

// DefaultSaveFile — имя файла сохранения.
const DefaultSaveFile = "SAVEDGAME.sav"

// maxSegment ограничивает размер сегмента, чтобы битый файл не заставил выделить гигабайты.
const maxSegment = 512 * 1024 * 1024

// SaveService пишет и читает единственный файл сохранения.
//
// Формат: три сегмента подряд, каждый — длина uint64 little-endian и байты:
// версия формата, идентификатор сборки, состояние (CBOR + zstd).
type SaveService struct {
	Path string
}

func NewSaveService(path string) *SaveService {
	if path == "" {
		path = DefaultSaveFile
	}
	return &SaveService{Path: path}
}

// Exists — есть ли файл сохранения.
func (s *SaveService) Exists() bool {
	_, err := os.Stat(s.Path)
	return err == nil
}

// Save сериализует состояние и записывает файл. Запись идёт через временный файл,
// так что прерванное сохранение не портит предыдущее.
func (s *SaveService) Save(state any) error {
	blob, err := EncodeBlob(state)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}

	var buf bytes.Buffer
	for _, seg := range [][]byte{[]byte(version.FormatVersion), []byte(version.Identifier()), blob} {
		if err := writeSegment(&buf, seg); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "savegame",
		"path":      s.Path,
		"bytes":     buf.Len(),
	}).Info("Game saved")
	return nil
}

// Load читает сохранение в state. Файл не удаляется: это делает вызывающий,
// когда игра из него полностью поднята. Несовпадение версии или сборки логируется, но не считается ошибкой.
func (s *SaveService) Load(state any) error {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoSave
	}
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}

	r := bytes.NewReader(data)
	savedVersion, err := readSegment(r)
	if err != nil {
		return fmt.Errorf("load version: %w", err)
	}
	savedBuild, err := readSegment(r)
	if err != nil {
		return fmt.Errorf("load build id: %w", err)
	}
	blob, err := readSegment(r)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}

	fields := logrus.Fields{"component": "savegame", "path": s.Path}
	if string(savedVersion) != version.FormatVersion {
		logger.Log.WithFields(fields).WithFields(logrus.Fields{
			"saved_version":   string(savedVersion),
			"current_version": version.FormatVersion,
		}).Warn("Save was written by a different format version")
	}
	if string(savedBuild) != version.Identifier() {
		logger.Log.WithFields(fields).WithFields(logrus.Fields{
			"saved_build":   string(savedBuild),
			"current_build": version.Identifier(),
		}).Warn("Save was written by a different build")
	}

	if err := DecodeBlob(blob, state); err != nil {
		return fmt.Errorf("load: %w", err)
	}
	return nil
}

// Remove удаляет файл сохранения. Отсутствие файла не считается ошибкой.
func (s *SaveService) Remove() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove save: %w", err)
	}
	return nil
}

func writeSegment(w io.Writer, data []byte) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(len(data))); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

func readSegment(r io.Reader) ([]byte, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("read segment length: %w", err)
	}
	if n > maxSegment {
		return nil, fmt.Errorf("segment length %d exceeds limit", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, fmt.Errorf("read segment: %w", err)
	}
	return buf, nil
}
