package debug

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

var errNotSolved = errors.New("debug: no solved data to render")

// Charts 求解结果绘制
type Charts struct {
	Record
}

func legend() charts.GlobalOpts {
	return charts.WithLegendOpts(opts.Legend{
		Type:   "scroll",
		Orient: "vertical",
		Right:  "10",
		Top:    "20",
		Bottom: "20",
	})
}

// Render 格式化
func (c *Charts) Render(w io.Writer) error {
	if len(c.Currents) == 0 {
		return errNotSolved
	}
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "电路网孔信息",
			Subtitle: "网孔与支路连接网络图",
		}),
		legend(),
	)
	graph.SetSeriesOptions(
		charts.WithEmphasisOpts(opts.Emphasis{
			Label: &opts.Label{
				Show:     opts.Bool(true),
				Color:    "black",
				Position: "left",
			},
		}),
		charts.WithLineStyleOpts(opts.LineStyle{
			Curveness: 0.3,
		}),
	)
	barM := charts.NewBar()
	barM.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "网孔电流",
			Subtitle: "各网孔求解电流 (A)",
		}),
		legend(),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
	)
	barB := charts.NewBar()
	barB.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "支路电流与功率",
			Subtitle: "支路电流 (A) 与耗散功率 (W)",
		}),
		legend(),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
	)
	// 连接图
	{
		nodes := make([]opts.GraphNode, 0, len(c.Meshes)+len(c.Branches))
		for i, m := range c.Meshes {
			nodes = append(nodes, opts.GraphNode{
				Name:     meshName(m),
				Category: 0,
				Value:    float32(c.Currents[i]),
				Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
			})
		}
		for _, b := range c.Branches {
			nodes = append(nodes, opts.GraphNode{
				Name:     branchName(b),
				Category: 1,
				Tooltip:  &opts.Tooltip{Show: opts.Bool(true)},
			})
		}
		links := make([]opts.GraphLink, 0, len(c.Links))
		for _, l := range c.Links {
			link := opts.GraphLink{
				Source: meshName(c.Meshes[l[0]]),
				Target: branchName(c.Branches[l[1]]),
			}
			if l[1] < len(c.Branch) {
				link.Value = float32(c.Branch[l[1]])
			}
			links = append(links, link)
		}
		graph.AddSeries("电路列表", nodes, links,
			charts.WithGraphChartOpts(opts.GraphChart{
				Categories: []*opts.GraphCategory{
					{Name: "网孔", ItemStyle: &opts.ItemStyle{Color: "#c71979b7"}},
					{Name: "支路", ItemStyle: &opts.ItemStyle{Color: "#1987c7b7"}},
				},
				Roam:               opts.Bool(true),
				Force:              &opts.GraphForce{Repulsion: 80},
				EdgeLabel:          &opts.EdgeLabel{Show: opts.Bool(true)},
				FocusNodeAdjacency: opts.Bool(true),
			}))
	}
	// 网孔电流
	{
		items := make([]opts.BarData, len(c.Currents))
		for i, v := range c.Currents {
			items[i] = opts.BarData{Value: v}
		}
		barM.SetXAxis(c.Meshes).AddSeries("电流", items)
	}
	// 支路电流与功率
	{
		current := make([]opts.BarData, len(c.Branch))
		power := make([]opts.BarData, len(c.Branch))
		for i, v := range c.Branch {
			current[i] = opts.BarData{Value: v}
			sum := 0.0
			for _, p := range c.Power[i] {
				sum += p
			}
			power[i] = opts.BarData{Value: sum}
		}
		barB.SetXAxis(c.Branches).
			AddSeries("电流", current).
			AddSeries("功率", power)
	}
	page := components.NewPage()
	page.AddCharts(
		graph,
		barM,
		barB,
	)
	return page.Render(w)
}

// Handler 发布到网页面
func (c *Charts) Handler(w http.ResponseWriter, _ *http.Request) {
	if err := c.Render(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func meshName(id string) string   { return fmt.Sprintf("Mesh(%s)", id) }
func branchName(id string) string { return fmt.Sprintf("Branch(%s)", id) }
