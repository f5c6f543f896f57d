package executor

import (
	"context"
	"runtime"
	"testing"
	"time"

	"crosslist/internal/reconcile"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test actuators use /bin/sh")
	}
}

func TestCommandExecutorSuccess(t *testing.T) {
	requireShell(t)

	exec := &CommandExecutor{Argv: []string{"/bin/sh", "-c", "cat > /dev/null; exit 0"}}
	result := exec.Execute(context.Background(), reconcile.Action{
		Kind:    reconcile.KindDelist,
		Subject: "m1",
	})
	if !result.Success {
		t.Fatalf("result = %+v", result)
	}
}

func TestCommandExecutorPermanentExitCode(t *testing.T) {
	requireShell(t)

	exec := &CommandExecutor{Argv: []string{"/bin/sh", "-c", "echo gone; exit 2"}}
	result := exec.Execute(context.Background(), reconcile.Action{Subject: "m1"})
	if result.Success || result.Retryable {
		t.Fatalf("result = %+v, want permanent failure", result)
	}
	if result.Message != "gone" {
		t.Fatalf("Message = %q", result.Message)
	}
}

func TestCommandExecutorRetryableExitCode(t *testing.T) {
	requireShell(t)

	exec := &CommandExecutor{Argv: []string{"/bin/sh", "-c", "exit 1"}}
	result := exec.Execute(context.Background(), reconcile.Action{Subject: "m1"})
	if result.Success || !result.Retryable {
		t.Fatalf("result = %+v, want retryable failure", result)
	}
}

func TestCommandExecutorTimeout(t *testing.T) {
	requireShell(t)

	exec := &CommandExecutor{
		Argv:    []string{"/bin/sh", "-c", "sleep 5"},
		Timeout: 50 * time.Millisecond,
	}
	result := exec.Execute(context.Background(), reconcile.Action{Subject: "m1"})
	if result.Success || !result.Retryable {
		t.Fatalf("result = %+v, want retryable timeout", result)
	}
}

func TestCommandExecutorNoCommand(t *testing.T) {
	exec := &CommandExecutor{}
	result := exec.Execute(context.Background(), reconcile.Action{Subject: "m1"})
	if result.Success || result.Retryable {
		t.Fatalf("result = %+v, want permanent failure", result)
	}
}
