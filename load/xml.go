package load

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"meshcircuit/graph"
	"meshcircuit/types"
)

type xmlMeshes struct {
	XMLName xml.Name  `xml:"meshes"`
	Meshes  []xmlMesh `xml:"mesh"`
}

type xmlMesh struct {
	ID       string      `xml:"ID,attr"`
	Branches []xmlBranch `xml:"branch"`
}

type xmlBranch struct {
	ID        string       `xml:"ID,attr"`
	Direction string       `xml:"direction,attr"`
	Elements  []xmlElement `xml:",any"`
}

// xmlElement 支路子元素，按文档顺序保存
type xmlElement struct {
	XMLName xml.Name
	ID      string `xml:"ID,attr"`
	Value   string `xml:"value,attr"`
}

func readXML(r io.Reader, topo *graph.Topology) error {
	var doc xmlMeshes
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("decode xml: %w", err)
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
			for _, e := range b.Elements {
				kind, err := types.ParseElementKind(e.XMLName.Local)
				if err != nil {
					return fmt.Errorf("mesh %s branch %s: %w", m.ID, b.ID, err)
				}
				value, err := strconv.ParseFloat(strings.TrimSpace(e.Value), 64)
				if err != nil {
					return fmt.Errorf("mesh %s branch %s element %s: invalid value %q: %w", m.ID, b.ID, e.ID, e.Value, graph.ErrInvalidValue)
				}
				if err := topo.RecordElementOriented(mesh, branch, o, kind, types.ElementID(e.ID), value); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
