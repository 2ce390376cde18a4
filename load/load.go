// Package load 读取电路描述文件并构建网孔拓扑
package load

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"

	"meshcircuit/graph"
)

// ErrUnsupportedFormat 无法识别的文件格式
var ErrUnsupportedFormat = errors.New("load: unsupported input format")

// Format 输入格式
type Format int

const (
	FormatUnknown Format = iota
	FormatXML            // <meshes><mesh><branch>...
	FormatYAML           // meshes: [...]
	FormatNetlist        // mesh M1 { branch B1 { ... } }
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	case FormatNetlist:
		return "netlist"
	}
	return "unknown"
}

// FormatOf 按扩展名判断格式
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cir", ".net":
		return FormatNetlist, nil
	}
	return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// File 读取电路文件
func File(ctx context.Context, path string) (*graph.Topology, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	defer f.Close()
	logr.FromContextOrDiscard(ctx).Info("reading circuit file", "path", path, "format", format.String())
	topo, err := Reader(ctx, f, format)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return topo, nil
}

// Reader 从 r 读取指定格式的电路描述
func Reader(ctx context.Context, r io.Reader, format Format) (*graph.Topology, error) {
	topo := graph.NewTopology(graph.WithLogger(logr.FromContextOrDiscard(ctx)))
	var err error
	switch format {
	case FormatXML:
		err = readXML(r, topo)
	case FormatYAML:
		err = readYAML(r, topo)
	case FormatNetlist:
		err = readNetlist(r, topo)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return topo, nil
}

// String 读取电路描述字符串
func String(ctx context.Context, s string, format Format) (*graph.Topology, error) {
	return Reader(ctx, strings.NewReader(s), format)
}
