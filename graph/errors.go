package graph

import (
	"errors"
	"fmt"
	"strings"

	"meshcircuit/types"
)

var (
	// ErrMalformedTopology 拓扑不满足平面网孔分析的前提
	ErrMalformedTopology = errors.New("graph: malformed topology")
	// ErrConflictingElement 同一元件标识以不同类型或数值重复声明
	ErrConflictingElement = errors.New("graph: conflicting element")
	// ErrInvalidValue 标识为空或数值不是有限值
	ErrInvalidValue = errors.New("graph: invalid value")
)

// TopologyError 拓扑错误，记录出错的网孔与支路
type TopologyError struct {
	Reason   string           // 错误原因
	Meshes   []types.MeshID   // 相关网孔
	Branches []types.BranchID // 相关支路
}

func (e *TopologyError) Error() string {
	var sb strings.Builder
	sb.WriteString("graph: malformed topology: ")
	sb.WriteString(e.Reason)
	if len(e.Meshes) > 0 {
		fmt.Fprintf(&sb, " (meshes %v)", e.Meshes)
	}
	if len(e.Branches) > 0 {
		fmt.Fprintf(&sb, " (branches %v)", e.Branches)
	}
	return sb.String()
}

func (e *TopologyError) Unwrap() error { return ErrMalformedTopology }

// ElementError 元件声明错误
type ElementError struct {
	Mesh    types.MeshID
	Branch  types.BranchID
	Element types.ElementID
	Reason  string
	Err     error // ErrConflictingElement 或 ErrInvalidValue
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("%v: mesh %q branch %q element %q: %s", e.Err, e.Mesh, e.Branch, e.Element, e.Reason)
}

func (e *ElementError) Unwrap() error { return e.Err }
