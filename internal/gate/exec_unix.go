//go:build !windows

package gate

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"
)

/**
 * Hand process control to the trailing command (POSIX implementation)
 * @param {[]string} argv - Command and its arguments
 * @returns {error} Only returns on failure; on success the process image is replaced
 * @description
 * - execve替换当前进程映像，命令继承pid、标准流、进程组与信号处置
 * - 不残留包装进程，退出码与信号语义与直接启动无异
 */
func handoff(argv []string) error {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("command %q not found: %w", argv[0], err)
	}
	if err := syscall.Exec(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("exec %q failed: %w", path, err)
	}
	return nil
}
