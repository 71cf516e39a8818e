package utils

import (
	"bytes"
	"os/exec"
)

// RealCmdRunner executes external commands, which in practice means the git
// binary for the bisect log.
type RealCmdRunner struct{}

// Run executes cmd with args and returns the captured stdout and stderr.
// stderr is returned even when the command fails so callers can surface
// git's own diagnostics.
func (r *RealCmdRunner) Run(cmd string, args ...string) (string, string, error) {
	command := exec.Command(cmd, args...)

	var stdoutBuffer, stderrBuffer bytes.Buffer
	command.Stdout = &stdoutBuffer
	command.Stderr = &stderrBuffer

	err := command.Run()

	return stdoutBuffer.String(), stderrBuffer.String(), err
}
