// Package meshcircuit 网孔电流法直流电路求解
package meshcircuit

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"meshcircuit/graph"
	"meshcircuit/load"
	"meshcircuit/mesh"
	"meshcircuit/report"
)

// Circuit 电路求解器
type Circuit struct {
	*graph.Topology
	Result *mesh.Result // 最近一次求解结果
}

// NewCircuit 初始化
func NewCircuit() *Circuit {
	return &Circuit{Topology: graph.NewTopology()}
}

// Load 加载电路文件（xml/yaml/netlist）
func Load(ctx context.Context, filename string) (*Circuit, error) {
	topo, err := load.File(ctx, filename)
	if err != nil {
		return nil, err
	}
	return &Circuit{Topology: topo}, nil
}

// Solve 求解电路
func (cir *Circuit) Solve(ctx context.Context, opts mesh.Options) error {
	res, err := mesh.Solve(ctx, cir.Topology, opts)
	if err != nil {
		return err
	}
	cir.Result = res
	return nil
}

// Report 写出文本报告
func (cir *Circuit) Report(w io.Writer) error {
	return report.WriteText(w, cir.Topology)
}

// Export 导出 netlist 格式数据
func (cir *Circuit) Export(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := cir.WriteNetlist(file); err != nil {
		return err
	}
	return file.Close()
}

// WriteNetlist 以 netlist 格式写出拓扑，可由 load 重新读取
func (cir *Circuit) WriteNetlist(w io.Writer) error {
	writer := bufio.NewWriter(w)
	for _, m := range cir.Meshes() {
		fmt.Fprintf(writer, "mesh %s {\n", netlistID(string(m.ID)))
		for _, bid := range m.Branches() {
			fmt.Fprintf(writer, "    branch %s %s {", netlistID(string(bid)), m.Orientation(bid))
			elements := cir.Elements(m.ID, bid)
			if len(elements) == 0 {
				writer.WriteString(" }\n")
				continue
			}
			writer.WriteRune('\n')
			for _, e := range elements {
				fmt.Fprintf(writer, "        %s %s %s;\n", e.Kind, netlistID(string(e.ID)), strconv.FormatFloat(e.Value, 'g', -1, 64))
			}
			writer.WriteString("    }\n")
		}
		writer.WriteString("}\n")
	}
	return writer.Flush()
}

var identPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_\-]*$`)

// netlistKeywords 与语法关键字同名的标识符需要加引号
var netlistKeywords = map[string]bool{
	"mesh": true, "branch": true, "forward": true, "reverse": true,
	"battery": true, "resistance": true, "resistor": true,
}

// netlistID 非普通标识符的 ID 以带引号字符串写出
func netlistID(id string) string {
	if identPattern.MatchString(id) && !netlistKeywords[id] {
		return id
	}
	return strconv.Quote(id)
}
