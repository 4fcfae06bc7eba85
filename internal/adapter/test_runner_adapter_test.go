package adapter

import (
	"bytes"
	"context"
	"testing"

	m "github.com/Nemesis2003/smartci-platform/internal/model"
)

func TestLocalTestRunnerAdapter_ZeroExit(t *testing.T) {
	runner := NewLocalTestRunnerAdapter()

	code, err := runner.Run(context.Background(), m.Path(t.TempDir()), "true", nil, "")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
}

func TestLocalTestRunnerAdapter_NonZeroExitIsNotAnError(t *testing.T) {
	runner := NewLocalTestRunnerAdapter()

	code, err := runner.Run(context.Background(), m.Path(t.TempDir()), "false", nil, "")
	if err != nil {
		t.Fatalf("non-zero exit must be a result, not an error: %v", err)
	}

	if code == 0 {
		t.Fatalf("expected non-zero exit code")
	}
}

func TestLocalTestRunnerAdapter_AppendsFilterAndFiles(t *testing.T) {
	var stdout bytes.Buffer

	runner := &LocalTestRunnerAdapter{stdout: &stdout, stderr: &stdout}

	code, err := runner.Run(context.Background(), m.Path(t.TempDir()), "echo pytest", []string{"tests/test_io.py"}, "test_compute or test_serve")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	want := "pytest -k test_compute or test_serve tests/test_io.py\n"
	if stdout.String() != want {
		t.Fatalf("argv mismatch:\n got %q\nwant %q", stdout.String(), want)
	}
}

func TestLocalTestRunnerAdapter_SpawnFailure(t *testing.T) {
	runner := NewLocalTestRunnerAdapter()

	code, err := runner.Run(context.Background(), m.Path(t.TempDir()), "definitely-not-a-command-12345", nil, "")
	if err == nil {
		t.Fatalf("expected spawn error")
	}

	if code == 0 {
		t.Fatalf("spawn failure must report a non-zero code")
	}
}

func TestLocalTestRunnerAdapter_EmptyCommand(t *testing.T) {
	runner := NewLocalTestRunnerAdapter()

	if _, err := runner.Run(context.Background(), m.Path(t.TempDir()), "   ", nil, ""); err == nil {
		t.Fatalf("expected error for empty command")
	}
}
