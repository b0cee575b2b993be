package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"waitfor/internal/gate"
	"waitfor/internal/models"
)

var (
	quiet          bool
	timeoutSeconds int
)

var RootCmd = &cobra.Command{
	Use:   "waitfor HOST:PORT [-q|--quiet] [-t SECONDS|--timeout=SECONDS] [-- COMMAND [ARGS...]]",
	Short: "Block startup until a prerequisite service is reachable",
	Long: `waitfor blocks until HOST:PORT accepts a TCP connection, then exits 0
or hands control to the trailing COMMAND so it inherits the process identity,
standard streams and exit-code semantics. Exits 1 when the timeout elapses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          validateArgs,
	RunE:          runGate,
}

const rootExample = `  # wait up to 30s for the database, then start the app
  waitfor db:27017 -t 30 -- node app.js`

// validateArgs 校验"--"之前恰好有一个HOST:PORT位置参数
func validateArgs(cmd *cobra.Command, args []string) error {
	positional := args
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		positional = args[:dash]
	}
	if len(positional) != 1 {
		return gate.NewUsageError(
			fmt.Errorf("exactly one HOST:PORT argument is required, got %d", len(positional)))
	}
	return nil
}

/**
 * Run the startup gate from the parsed command line
 * @param {*cobra.Command} cmd - Cobra command carrying flags and dash position
 * @param {[]string} args - Positional arguments, trailing command after "--"
 * @returns {error} Usage, timeout or handoff error; nil when ready with no command
 */
func runGate(cmd *cobra.Command, args []string) error {
	ep, err := models.ParseEndpoint(args[0])
	if err != nil {
		return gate.NewUsageError(err)
	}
	if timeoutSeconds < 0 {
		return gate.NewUsageError(fmt.Errorf("timeout must be >= 0, got %d", timeoutSeconds))
	}

	var trailing []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		trailing = args[dash:]
	}

	cfg := &models.WaitConfig{
		Endpoint:       ep,
		TimeoutSeconds: timeoutSeconds,
		Quiet:          quiet,
		Command:        trailing,
	}

	// 终止信号要能及时打断等待循环
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return gate.New(cfg).Run(ctx)
}

func init() {
	RootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the timeout notice")
	RootCmd.Flags().IntVarP(&timeoutSeconds, "timeout", "t", models.DefaultWaitTimeout,
		"seconds to wait for the endpoint; 0 waits indefinitely")
	RootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return gate.NewUsageError(err)
	})

	RootCmd.Example = rootExample
}
