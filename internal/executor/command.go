package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os/exec"
	"strings"
	"time"

	"crosslist/internal/reconcile"
)

// Exit codes understood from the actuator program. Anything else, including
// a killed or crashed process, counts as a retryable failure.
const (
	exitSuccess   = 0
	exitPermanent = 2
)

// CommandExecutor launches an external actuator program per action. The
// action is written to the program's stdin as JSON; the exit code reports
// the outcome. This keeps the browser automation fully out of process.
type CommandExecutor struct {
	Argv    []string
	Timeout time.Duration
}

type actionEnvelope struct {
	Kind     string `json:"kind"`
	Platform string `json:"platform"`
	Subject  string `json:"subject"`
	Key      string `json:"key,omitempty"`
	Payload  struct {
		Title       string `json:"title,omitempty"`
		Description string `json:"description,omitempty"`
		Price       int    `json:"price,omitempty"`
		Condition   string `json:"condition,omitempty"`
		ImageKey    string `json:"image_key,omitempty"`
	} `json:"payload"`
}

func (c *CommandExecutor) Execute(ctx context.Context, action reconcile.Action) Result {
	if len(c.Argv) == 0 {
		return Result{Retryable: false, Message: "no actuator command configured"}
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	envelope := actionEnvelope{
		Kind:     string(action.Kind),
		Platform: string(action.Platform),
		Subject:  action.Subject,
		Key:      action.Key,
	}
	envelope.Payload.Title = action.Payload.Title
	envelope.Payload.Description = action.Payload.Description
	envelope.Payload.Price = action.Payload.Price
	envelope.Payload.Condition = action.Payload.Condition
	envelope.Payload.ImageKey = action.Payload.ImageKey

	input, err := json.Marshal(envelope)
	if err != nil {
		return Result{Retryable: false, Message: "encode action: " + err.Error()}
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Stdin = bytes.NewReader(input)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	runErr := cmd.Run()
	message := strings.TrimSpace(output.String())

	if runErr == nil {
		return Result{Success: true, Message: message}
	}

	if ctx.Err() != nil {
		return Result{Retryable: true, Message: "actuator timed out"}
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) && exitErr.ExitCode() == exitPermanent {
		return Result{Retryable: false, Message: message}
	}
	return Result{Retryable: true, Message: message}
}
