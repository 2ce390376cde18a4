package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"meshcircuit/graph"
)

// PowerBars 每个电阻的耗散功率柱状图
func PowerBars(topo *graph.Topology) (*plot.Plot, error) {
	var (
		values plotter.Values
		names  []string
	)
	for _, b := range topo.Branches() {
		for i, imp := range b.Impedances {
			if i >= len(b.Power) {
				continue
			}
			values = append(values, b.Power[i])
			names = append(names, fmt.Sprintf("%s/%s", b.ID, imp.ID))
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("report: no dissipated power to plot")
	}

	p := plot.New()
	p.Title.Text = "Power dissipation"
	p.Y.Label.Text = "P (W)"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// PlotPower 保存功率柱状图，格式由扩展名决定（png/svg/pdf）
func PlotPower(topo *graph.Topology, path string) error {
	p, err := PowerBars(topo)
	if err != nil {
		return err
	}
	if err := p.Save(16*vg.Centimeter, 10*vg.Centimeter, path); err != nil {
		return fmt.Errorf("report: save plot: %w", err)
	}
	return nil
}
