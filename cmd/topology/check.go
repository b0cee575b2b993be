package topology

import (
	"fmt"

	"github.com/spf13/cobra"

	"waitfor/internal/topology"
)

var checkCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a topology document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkTopology(args[0])
	},
}

/**
 * Validate topology file against the schema and the DAG invariant
 * @param {string} path - Topology YAML file
 * @returns {error} Returns the first violation found, nil when valid
 */
func checkTopology(path string) error {
	doc, err := topology.Load(path)
	if err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	fmt.Printf("Topology %s is valid (%d services)\n", path, len(doc.Services))
	return nil
}

func init() {
	topologyCmd.AddCommand(checkCmd)
}
