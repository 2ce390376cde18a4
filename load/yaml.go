package load

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"meshcircuit/graph"
	"meshcircuit/types"
)

type yamlCircuit struct {
	Meshes []yamlMesh `yaml:"meshes"`
}

type yamlMesh struct {
	ID       string       `yaml:"id"`
	Branches []yamlBranch `yaml:"branches"`
}

type yamlBranch struct {
	ID          string        `yaml:"id"`
	Direction   string        `yaml:"direction,omitempty"`
	Batteries   []yamlElement `yaml:"batteries,omitempty"`
	Resistances []yamlElement `yaml:"resistances,omitempty"`
}

type yamlElement struct {
	ID    string  `yaml:"id"`
	Value float64 `yaml:"value"`
}

func readYAML(r io.Reader, topo *graph.Topology) error {
	var doc yamlCircuit
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode yaml: %w", err)
	}
	for _, m := range doc.Meshes {
		mesh := types.MeshID(m.ID)
		if _, err := topo.AddMesh(mesh); err != nil {
			return err
		}
		for _, b := range m.Branches {
			o, err := types.ParseOrientation(b.Direction)
			if err != nil {
				return fmt.Errorf("mesh %s branch %s: %w", m.ID, b.ID, err)
			}
			branch := types.BranchID(b.ID)
			if err := topo.RegisterBranch(mesh, branch, o); err != nil {
				return err
			}
			for _, e := range b.Batteries {
				if err := topo.RecordElementOriented(mesh, branch, o, types.KindBattery, types.ElementID(e.ID), e.Value); err != nil {
					return err
				}
			}
			for _, e := range b.Resistances {
				if err := topo.RecordElementOriented(mesh, branch, o, types.KindResistance, types.ElementID(e.ID), e.Value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
