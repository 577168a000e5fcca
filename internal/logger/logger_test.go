package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setupLoggerTest() (*bytes.Buffer, func()) {
	buf := new(bytes.Buffer)
	SetOutput(buf)
	oldVerbose := IsVerbose()
	return buf, func() {
		SetOutput(os.Stderr)
		SetVerbose(oldVerbose)
	}
}

func TestDebug_SuppressedByDefault(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(false)
	Debug("hidden %s", "message")

	assert.Empty(t, buf.String())
}

func TestDebug_PrintedWhenVerbose(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(true)
	Debug("visible %s", "message")

	assert.Contains(t, buf.String(), "[DEBUG] visible message")
}

func TestInfo_AlwaysPrinted(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(false)
	Info("synced %d pages", 3)

	assert.Contains(t, buf.String(), "[INFO] synced 3 pages")
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(false)
	Warn("image skipped: %s", "404")

	assert.Contains(t, buf.String(), "[WARN] image skipped: 404")
}

func TestError_AlwaysPrinted(t *testing.T) {
	buf, cleanup := setupLoggerTest()
	defer cleanup()

	Error("sync failed: %s", "boom")

	assert.Contains(t, buf.String(), "[ERROR] sync failed: boom")
}

func TestSetVerbose_Toggle(t *testing.T) {
	_, cleanup := setupLoggerTest()
	defer cleanup()

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}
