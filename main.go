package main

import (
	"errors"
	"fmt"
	"os"

	_ "waitfor/cmd"
	"waitfor/cmd/root"
	"waitfor/internal/config"
	"waitfor/internal/env"
	"waitfor/internal/gate"
	"waitfor/internal/logger"
	"waitfor/internal/probe"
)

func main() {
	// 检查是否是服务器模式
	env.Serving = len(os.Args) > 1 && os.Args[1] == "serve"

	// 根据运行模式初始化日志系统
	logger.InitLogger(config.Config.Log.Path, config.Config.Log.Level, env.Serving)

	cmd, err := root.RootCmd.ExecuteC()
	if err == nil {
		os.Exit(gate.ExitReady)
	}

	var uerr *gate.UsageError
	switch {
	case errors.As(err, &uerr):
		fmt.Fprintf(os.Stderr, "Error: %v\n", uerr.Err)
		fmt.Fprint(os.Stderr, cmd.UsageString())
		os.Exit(gate.ExitUsage)
	case errors.Is(err, probe.ErrTimedOut):
		// 超时提示已由gate按quiet约定输出
		os.Exit(gate.ExitTimeout)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(gate.ExitTimeout)
	}
}
