// Package report 输出求解结果
package report

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"meshcircuit/graph"
)

const banner = "------------------"

// FormatValue 数值格式，6位有效数字
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// DefaultOutput 默认结果文件名 <输入文件去扩展名>_solved.txt
func DefaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_solved.txt"
}

// WriteText 写出文本报告
func WriteText(w io.Writer, topo *graph.Topology) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, banner)
	fmt.Fprintln(bw, "----- Meshes -----")
	fmt.Fprintln(bw, banner)
	for _, m := range topo.Meshes() {
		fmt.Fprintf(bw, "\nMesh with ID: %s:\n", m.ID)
		fmt.Fprintf(bw, "--> Current: %s (A)\n", FormatValue(m.Current))
	}

	fmt.Fprintln(bw, "\n"+banner)
	fmt.Fprintln(bw, "---- Branches ----")
	fmt.Fprintln(bw, banner)
	for _, b := range topo.Branches() {
		fmt.Fprintf(bw, "\nBranch with ID: %s:\n", b.ID)
		fmt.Fprintf(bw, "--> Current: %s (A)\n", FormatValue(b.Current))
		for i, imp := range b.Impedances {
			p := 0.0
			if i < len(b.Power) {
				p = b.Power[i]
			}
			fmt.Fprintf(bw, "--> Power dissipated in %s: %s (W)\n", imp.ID, FormatValue(p))
		}
	}
	return bw.Flush()
}

// SaveText 保存文本报告，拓扑未求解时拒绝写出
func SaveText(ctx context.Context, topo *graph.Topology, path string) (err error) {
	if !topo.Solved() {
		return fmt.Errorf("report: circuit is not solved")
	}
	logr.FromContextOrDiscard(ctx).Info("saving results", "path", path)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("report: %w", cerr)
		}
	}()
	return WriteText(f, topo)
}
