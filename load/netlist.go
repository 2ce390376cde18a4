package load

import (
	"fmt"
	"io"

	"meshcircuit/graph"
	"meshcircuit/load/ast"
	"meshcircuit/types"
)

func readNetlist(r io.Reader, topo *graph.Topology) error {
	tree, err := ast.Parse("", r)
	if err != nil {
		return err
	}
	vars, err := tree.Variables()
	if err != nil {
		return err
	}
	for _, m := range tree.Meshes() {
		mesh := types.MeshID(m.ID)
		if _, err := topo.AddMesh(mesh); err != nil {
			return fmt.Errorf("line %d: %w", m.Pos.Line, err)
		}
		for _, b := range m.Branches {
			o, err := types.ParseOrientation(b.Direction)
			if err != nil {
				return fmt.Errorf("line %d: %w", b.Pos.Line, err)
			}
			branch := types.BranchID(b.ID)
			if err := topo.RegisterBranch(mesh, branch, o); err != nil {
				return fmt.Errorf("line %d: %w", b.Pos.Line, err)
			}
			for _, e := range b.Elements {
				kind, err := types.ParseElementKind(e.Kind)
				if err != nil {
					return fmt.Errorf("line %d: %w", e.Pos.Line, err)
				}
				value, err := e.Value.Resolve(vars)
				if err != nil {
					return fmt.Errorf("line %d: element %s: %w", e.Pos.Line, e.ID, err)
				}
				if err := topo.RecordElementOriented(mesh, branch, o, kind, types.ElementID(e.ID), value); err != nil {
					return fmt.Errorf("line %d: %w", e.Pos.Line, err)
				}
			}
		}
	}
	return nil
}
