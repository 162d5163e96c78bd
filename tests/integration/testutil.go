// Package integration drives the satchel binary end to end.
package integration

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var (
	// satchelBin is the path to the built satchel binary.
	satchelBin string
	// buildErr captures any build error.
	buildErr error
)

// BuildError wraps a build error with output.
type BuildError struct {
	Err    error
	Output string
}

func (e *BuildError) Error() string {
	return e.Err.Error() + ": " + e.Output
}

// FindProjectRoot finds the project root by walking up and looking for go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}

// cleanEnv returns os.Environ() without the variables satchel reads, so the
// subprocess sees only what a test adds.
func cleanEnv() []string {
	legacy := map[string]bool{
		"ENVIRONMENT": true, "API_HOST": true, "API_PORT": true,
		"LOG_LEVEL": true, "LOG_FILE": true, "SECRET_KEY": true,
	}
	var env []string
	for _, e := range os.Environ() {
		name, _, _ := strings.Cut(e, "=")
		if strings.HasPrefix(name, "SATCHEL_") || strings.HasPrefix(name, "XDG_") || legacy[name] {
			continue
		}
		env = append(env, e)
	}
	return env
}

// TestEnv provides an isolated test environment with its own config and data directory.
type TestEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
	// Env holds extra KEY=VALUE pairs for the subprocess.
	Env []string
}

// NewTestEnv creates a new isolated test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	if buildErr != nil {
		t.Fatalf("failed to build satchel: %v", buildErr)
	}
	if satchelBin == "" {
		t.Fatal("satchel binary not built (satchelBin is empty)")
	}

	tempDir := t.TempDir()
	return &TestEnv{
		t:       t,
		TempDir: tempDir,
		Config:  filepath.Join(tempDir, "config"),
		DataDir: filepath.Join(tempDir, "data"),
	}
}

// CmdResult holds the result of a satchel command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunSatchel executes the satchel CLI with the environment's directories
// and the given arguments.
func (e *TestEnv) RunSatchel(args ...string) CmdResult {
	e.t.Helper()
	allArgs := append([]string{"--config-dir", e.Config, "--data-dir", e.DataDir}, args...)
	return e.run("", allArgs...)
}

// RunSatchelIn executes the satchel CLI in workDir without injecting
// directory flags.
func (e *TestEnv) RunSatchelIn(workDir string, args ...string) CmdResult {
	e.t.Helper()
	return e.run(workDir, args...)
}

func (e *TestEnv) run(workDir string, args ...string) CmdResult {
	e.t.Helper()

	cmd := exec.Command(satchelBin, args...)
	cmd.Env = append(cleanEnv(), e.Env...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	exitCode := 0
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			e.t.Fatalf("failed to run satchel: %v", err)
		}
		exitCode = exitErr.ExitCode()
	}

	return CmdResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// MustRunSatchel executes the satchel CLI and fails the test if it returns non-zero.
func (e *TestEnv) MustRunSatchel(args ...string) CmdResult {
	e.t.Helper()
	result := e.RunSatchel(args...)
	if result.ExitCode != 0 {
		e.t.Fatalf("satchel %v failed with exit code %d:\nstdout: %s\nstderr: %s",
			args, result.ExitCode, result.Stdout, result.Stderr)
	}
	return result
}

// ParseJSON parses JSON output into the target type.
func ParseJSON[T any](t *testing.T, jsonStr string) T {
	t.Helper()
	var result T
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		t.Fatalf("failed to parse JSON %q: %v", jsonStr, err)
	}
	return result
}

// Response is the wire shape printed by the request command.
type Response struct {
	Method       string         `json:"method"`
	Status       string         `json:"status"`
	Data         any            `json:"data"`
	ReceivedData map[string]any `json:"received_data"`
	Error        string         `json:"error"`
	Message      string         `json:"message"`
}
