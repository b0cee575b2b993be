package cmd

import (
	_ "waitfor/cmd/root"
	_ "waitfor/cmd/serve"
	_ "waitfor/cmd/topology"
)
