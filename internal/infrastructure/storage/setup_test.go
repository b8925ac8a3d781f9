package storage

import (
	"os"
	"testing"

	"dose-response/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	logger.Discard()
	os.Exit(m.Run())
}
