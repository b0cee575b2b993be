package root

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"waitfor/internal/gate"
	"waitfor/internal/logger"
)

func init() {
	logger.InitLogger("console", "error", false)
}

// execute 以给定参数执行根命令并收回错误
func execute(args []string) error {
	RootCmd.SetArgs(args)
	RootCmd.SetOut(&bytes.Buffer{})
	RootCmd.SetErr(&bytes.Buffer{})
	_, err := RootCmd.ExecuteC()
	return err
}

/**
 * TestNoArgumentsIsUsageError 零参数调用应是用法错误
 * @description
 * - 对应退出码2，main会把UsageString打到错误流
 */
func TestNoArgumentsIsUsageError(t *testing.T) {
	err := execute([]string{})

	var uerr *gate.UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("期望用法错误, 实际: %v", err)
	}
	if gate.ExitCode(err) != gate.ExitUsage {
		t.Errorf("用法错误应映射为退出码2")
	}

	usage := RootCmd.UsageString()
	if usage == "" || !strings.Contains(usage, "HOST:PORT") {
		t.Errorf("用法文本缺失或不完整: %q", usage)
	}
}

func TestMalformedEndpointIsUsageError(t *testing.T) {
	err := execute([]string{"not-an-endpoint"})

	var uerr *gate.UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("期望用法错误, 实际: %v", err)
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	err := execute([]string{"--definitely-not-a-flag", "db:27017"})

	var uerr *gate.UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("期望用法错误, 实际: %v", err)
	}
}

func TestNegativeTimeoutIsUsageError(t *testing.T) {
	err := execute([]string{"db:27017", "--timeout=-3"})

	var uerr *gate.UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("期望用法错误, 实际: %v", err)
	}
}
