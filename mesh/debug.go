package mesh

import (
	"io"

	"meshcircuit/maths"
	"meshcircuit/types"
)

// debug 默认调试实现，不记录任何内容
type debug struct{ is bool }

func (debug) Init(meshes []*types.Mesh, branches []*types.Branch)                          {}
func (d *debug) IsDebug() bool                                                             { return d.is }
func (d *debug) SetDebug(is bool)                                                          { d.is = is }
func (debug) System(matrix maths.Matrix, voltages maths.Vector)                            {}
func (debug) Factors(l, u maths.Matrix)                                                    {}
func (debug) Update(currents maths.Vector, meshes []*types.Mesh, branches []*types.Branch) {}
func (debug) Render(w io.Writer) error                                                     { return nil }
func (debug) Error(err error)                                                              {}
