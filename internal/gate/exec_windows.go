//go:build windows

package gate

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
)

/**
 * Hand process control to the trailing command (Windows implementation)
 * @param {[]string} argv - Command and its arguments
 * @returns {error} Only returns on start failure; otherwise exits with the child's exit code
 * @description
 * - Windows没有execve原语，用生成子进程+等待来近似进程替换
 * - 收到的中断信号转发给子进程，退出码原样传播
 */
func handoff(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %q failed: %w", argv[0], err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigCh:
				cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	err := cmd.Wait()
	close(done)
	signal.Stop(sigCh)

	if exitErr, ok := err.(*exec.ExitError); ok {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		return fmt.Errorf("wait for %q failed: %w", argv[0], err)
	}
	os.Exit(0)
	return nil
}
