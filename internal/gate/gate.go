package gate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"waitfor/internal/logger"
	"waitfor/internal/models"
	"waitfor/internal/probe"
)

/**
 * Gate 阻塞式启动门，对就绪探测和进程交接做一层编排
 * @property {*models.WaitConfig} cfg - 解析完成后不可变的调用配置
 * @property {io.Writer} errStream - 超时提示的输出流，默认stderr
 */
type Gate struct {
	cfg       *models.WaitConfig
	errStream io.Writer
}

func New(cfg *models.WaitConfig) *Gate {
	return &Gate{
		cfg:       cfg,
		errStream: os.Stderr,
	}
}

// SetErrStream 重定向超时提示输出，测试用
func (g *Gate) SetErrStream(w io.Writer) {
	g.errStream = w
}

/**
 * Run the startup gate to completion
 * @param {context.Context} ctx - Termination signals cancel the wait between ticks
 * @returns {error} nil on ready with no trailing command; probe.ErrTimedOut on timeout; exec errors otherwise
 * @description
 * - Blocks until the endpoint is transport-reachable
 * - With a trailing command, hands process control over and does not return on success
 * - The timeout notice goes to the error stream unless quiet mode is set
 */
func (g *Gate) Run(ctx context.Context) error {
	cfg := g.cfg
	logger.Debugf("Waiting for %s (timeout: %ds)", cfg.Endpoint.Addr(), cfg.TimeoutSeconds)

	err := probe.WaitReachable(ctx, cfg.Endpoint, cfg.TimeoutSeconds)
	switch {
	case errors.Is(err, probe.ErrTimedOut):
		if !cfg.Quiet {
			fmt.Fprintf(g.errStream, "waitfor: timeout occurred after waiting %d seconds for %s\n",
				cfg.TimeoutSeconds, cfg.Endpoint.Addr())
		}
		return err
	case err != nil:
		// 信号打断等待，按超时处理退出码，但不打印超时提示
		return err
	}

	if len(cfg.Command) == 0 {
		return nil
	}

	logger.Debugf("Endpoint %s ready, handing control to: %s",
		cfg.Endpoint.Addr(), strings.Join(cfg.Command, " "))
	// 成功时不再返回（unix下进程映像被替换）
	return handoff(cfg.Command)
}
