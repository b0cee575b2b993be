package topology

import (
	"waitfor/cmd/root"

	"github.com/spf13/cobra"
)

var topologyCmd = &cobra.Command{
	Use:   "topology",
	Short: "Startup topology operations (check/order)",
	Long:  `Validates the external startup topology and resolves the service launch order.`,
}

const topologyExample = `  # validate the topology document
  waitfor topology check topology.yaml`

func init() {
	root.RootCmd.AddCommand(topologyCmd)

	topologyCmd.Example = topologyExample
}
