package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshcircuit/load"
	"meshcircuit/mesh"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <circuit-file>",
		Short: "Check a circuit topology without solving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topo, err := load.File(cmd.Context(), args[0])
			if err != nil {
				return classify(err)
			}
			sys, err := mesh.Assemble(topo, a.cfg.MeshOptions().Mode)
			if err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d meshes, %d branches, symmetric=%t\n",
				args[0], topo.MeshCount(), topo.BranchCount(), sys.Matrix.IsSymmetric(0))
			return nil
		},
	}
}
