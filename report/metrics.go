package report

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"meshcircuit/graph"
	"meshcircuit/mesh"
)

// Metrics 求解指标
type Metrics struct {
	registry *prometheus.Registry

	meshes     prometheus.Gauge
	branches   prometheus.Gauge
	seconds    prometheus.Gauge
	residual   prometheus.Gauge
	totalPower prometheus.Gauge
	current    *prometheus.GaugeVec
	power      *prometheus.GaugeVec
}

// NewMetrics 创建独立注册表上的指标
func NewMetrics() *Metrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "meshcircuit", Name: name, Help: help})
	}
	m := &Metrics{
		registry:   prometheus.NewRegistry(),
		meshes:     gauge("meshes", "Number of meshes in the circuit."),
		branches:   gauge("branches", "Number of distinct branches in the circuit."),
		seconds:    gauge("solve_seconds", "Wall time spent solving the circuit."),
		residual:   gauge("residual", "Infinity norm of Z*I - V."),
		totalPower: gauge("power_watts_total", "Power dissipated by all resistors."),
		current: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "meshcircuit", Name: "branch_current_amperes", Help: "Signed branch current.",
		}, []string{"branch"}),
		power: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "meshcircuit", Name: "resistor_power_watts", Help: "Power dissipated per resistor.",
		}, []string{"branch", "resistor"}),
	}
	m.registry.MustRegister(m.meshes, m.branches, m.seconds, m.residual, m.totalPower, m.current, m.power)
	return m
}

// Registry 指标注册表
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Observe 记录一次求解
func (m *Metrics) Observe(topo *graph.Topology, res *mesh.Result) {
	m.meshes.Set(float64(topo.MeshCount()))
	m.branches.Set(float64(topo.BranchCount()))
	m.totalPower.Set(topo.TotalPower())
	if res != nil {
		m.seconds.Set(res.Elapsed.Seconds())
		m.residual.Set(res.Residual)
	}
	for _, b := range topo.Branches() {
		m.current.WithLabelValues(string(b.ID)).Set(b.Current)
		for i, imp := range b.Impedances {
			if i < len(b.Power) {
				m.power.WithLabelValues(string(b.ID), string(imp.ID)).Set(b.Power[i])
			}
		}
	}
}

// WriteMetrics 以 textfile 格式写出指标
func WriteMetrics(topo *graph.Topology, res *mesh.Result, path string) error {
	m := NewMetrics()
	m.Observe(topo, res)
	if err := prometheus.WriteToTextfile(path, m.Registry()); err != nil {
		return fmt.Errorf("report: write metrics: %w", err)
	}
	return nil
}
