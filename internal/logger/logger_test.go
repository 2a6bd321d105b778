package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	workDir := t.TempDir()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
	})

	logFilePath, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolveLogFilePath failed: %v", err)
	}

	wantSuffix := filepath.Join(defaultLogDirName, defaultLogFilename)
	if !strings.HasSuffix(logFilePath, wantSuffix) {
		t.Fatalf("log path want suffix %s got %s", wantSuffix, logFilePath)
	}
	if _, err := os.Stat(logFilePath); err != nil {
		t.Fatalf("log file should be created: %v", err)
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	dir := t.TempDir()
	log := New("release", Options{Dir: dir, Filename: "app.log"})
	if log == nil {
		t.Fatalf("New returned nil logger")
	}

	log.Info("order created")
	if err := log.Sync(); err != nil {
		t.Logf("sync returned: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "app.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if !strings.Contains(string(content), "order created") {
		t.Fatalf("log file should contain message, got %s", string(content))
	}
	if !strings.Contains(string(content), `"message"`) {
		t.Fatalf("release log should be JSON encoded, got %s", string(content))
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	dir := t.TempDir()
	log := New("debug", Options{Dir: dir, Filename: "debug.log"})
	if log == nil {
		t.Fatalf("New returned nil logger")
	}

	log.Debug("console only")
	if _, err := os.Stat(filepath.Join(dir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create a log file, stat err=%v", err)
	}
}
