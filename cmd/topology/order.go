package topology

import (
	"fmt"

	"github.com/spf13/cobra"

	"waitfor/internal/topology"
)

var orderCmd = &cobra.Command{
	Use:   "order FILE",
	Short: "Print services in a valid launch order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printOrder(args[0])
	},
}

// printOrder 输出拓扑排序后的服务启动顺序，依赖总在前
func printOrder(path string) error {
	doc, err := topology.Load(path)
	if err != nil {
		return err
	}
	ordered, err := doc.LaunchOrder()
	if err != nil {
		return err
	}
	for _, name := range ordered {
		fmt.Println(name)
	}
	return nil
}

func init() {
	topologyCmd.AddCommand(orderCmd)
}
