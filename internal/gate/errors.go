package gate

import (
	"errors"
	"fmt"

	"waitfor/internal/probe"
)

// UsageError 无效的命令行调用，对应退出码2
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("usage error: %v", e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError 包装参数解析错误
func NewUsageError(err error) *UsageError {
	return &UsageError{Err: err}
}

// 退出码约定：0就绪、1超时、2用法错误
const (
	ExitReady   = 0
	ExitTimeout = 1
	ExitUsage   = 2
)

/**
 * Map a gate error to the process exit code contract
 * @param {error} err - Error returned by Run or by argument parsing
 * @returns {int} 0 ready, 1 timed out (or cancelled), 2 usage error
 */
func ExitCode(err error) int {
	if err == nil {
		return ExitReady
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		return ExitUsage
	}
	if errors.Is(err, probe.ErrTimedOut) {
		return ExitTimeout
	}
	return ExitTimeout
}
