package report

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"meshcircuit/graph"
	"meshcircuit/mesh"
	"meshcircuit/types"
)

func solvedSeries(t *testing.T) (*graph.Topology, *mesh.Result) {
	t.Helper()
	topo := graph.NewTopology()
	for _, e := range []struct {
		m, b string
		k    types.ElementKind
		id   string
		v    float64
	}{
		{"A", "B1", types.KindBattery, "V1", 10},
		{"A", "B2", types.KindResistance, "R2", 5},
		{"B", "B2", types.KindResistance, "R2", 5},
		{"B", "B3", types.KindResistance, "R3", 5},
	} {
		if err := topo.RecordElement(types.MeshID(e.m), types.BranchID(e.b), e.k, types.ElementID(e.id), e.v); err != nil {
			t.Fatalf("RecordElement: %v", err)
		}
	}
	res, err := mesh.Solve(context.Background(), topo, mesh.DefaultOptions())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return topo, res
}

const seriesReport = `------------------
----- Meshes -----
------------------

Mesh with ID: A:
--> Current: 4 (A)

Mesh with ID: B:
--> Current: 2 (A)

------------------
---- Branches ----
------------------

Branch with ID: B1:
--> Current: 4 (A)

Branch with ID: B2:
--> Current: 2 (A)
--> Power dissipated in R2: 20 (W)

Branch with ID: B3:
--> Current: 2 (A)
--> Power dissipated in R3: 20 (W)
`

func TestWriteText(t *testing.T) {
	topo, _ := solvedSeries(t)
	var sb strings.Builder
	if err := WriteText(&sb, topo); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(seriesReport, sb.String()); diff != "" {
		t.Errorf("报告内容不一致 (-want +got):\n%s", diff)
	}
}

func TestFormatValue(t *testing.T) {
	got := []string{
		FormatValue(4),
		FormatValue(1.0 / 3),
		FormatValue(-2.5),
		FormatValue(1234567),
		FormatValue(1e-7),
	}
	want := []string{"4", "0.333333", "-2.5", "1.23457e+06", "1e-07"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("格式化错误 (-want +got):\n%s", diff)
	}
}

func TestDefaultOutput(t *testing.T) {
	for in, want := range map[string]string{
		"circuit.xml":       "circuit_solved.txt",
		"dir/two.mesh.yaml": "dir/two.mesh_solved.txt",
		"noext":             "noext_solved.txt",
	} {
		if got := DefaultOutput(in); got != want {
			t.Errorf("DefaultOutput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSaveText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	unsolved := graph.NewTopology()
	if err := SaveText(context.Background(), unsolved, path); err == nil {
		t.Fatal("未求解的电路不应写出报告")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("报告文件不应存在: %v", err)
	}

	topo, _ := solvedSeries(t)
	if err := SaveText(context.Background(), topo, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(seriesReport, string(data)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPlotPower(t *testing.T) {
	topo, _ := solvedSeries(t)
	for _, name := range []string{"power.png", "power.svg"} {
		path := filepath.Join(t.TempDir(), name)
		if err := PlotPower(topo, path); err != nil {
			t.Fatalf("PlotPower(%s): %v", name, err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Fatalf("图像未写出: %v", err)
		}
	}
	if _, err := PowerBars(graph.NewTopology()); err == nil {
		t.Fatal("空电路不应生成图表")
	}
}

func TestWriteMetrics(t *testing.T) {
	topo, res := solvedSeries(t)
	path := filepath.Join(t.TempDir(), "circuit.prom")
	if err := WriteMetrics(topo, res, path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		"meshcircuit_meshes 2",
		"meshcircuit_branches 3",
		"meshcircuit_power_watts_total 40",
		`meshcircuit_resistor_power_watts{branch="B2",resistor="R2"} 20`,
		`meshcircuit_branch_current_amperes{branch="B1"} 4`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("指标缺少 %q:\n%s", want, text)
		}
	}
}

func TestMetricsRegistry(t *testing.T) {
	topo, res := solvedSeries(t)
	m := NewMetrics()
	m.Observe(topo, res)
	mfs, err := m.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	got := map[string]float64{}
	for _, mf := range mfs {
		if len(mf.GetMetric()) == 1 {
			got[mf.GetName()] = mf.GetMetric()[0].GetGauge().GetValue()
		}
	}
	want := map[string]float64{
		"meshcircuit_meshes":            2,
		"meshcircuit_branches":          3,
		"meshcircuit_power_watts_total": 40,
		"meshcircuit_residual":          res.Residual,
		"meshcircuit_solve_seconds":     res.Elapsed.Seconds(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("指标不一致 (-want +got):\n%s", diff)
	}
}
