package mesh

import (
	"context"
	"errors"
	"io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"meshcircuit/graph"
	"meshcircuit/logging"
	"meshcircuit/maths"
	"meshcircuit/types"
)

// element 测试用元件声明
type element struct {
	mesh, branch string
	kind         types.ElementKind
	id           string
	value        float64
}

func battery(mesh, branch, id string, v float64) element {
	return element{mesh, branch, types.KindBattery, id, v}
}

func resistor(mesh, branch, id string, r float64) element {
	return element{mesh, branch, types.KindResistance, id, r}
}

func buildTopology(elements ...element) *graph.Topology {
	topo := graph.NewTopology()
	for _, e := range elements {
		Expect(topo.RecordElement(types.MeshID(e.mesh), types.BranchID(e.branch), e.kind, types.ElementID(e.id), e.value)).To(Succeed())
	}
	return topo
}

// twoMeshSeries 网孔A含10V电池，与网孔B共享5Ω支路，网孔B另有5Ω电阻
func twoMeshSeries() *graph.Topology {
	return buildTopology(
		battery("A", "B1", "V1", 10),
		resistor("A", "B2", "R2", 5),
		resistor("B", "B2", "R2", 5),
		resistor("B", "B3", "R3", 5),
	)
}

func mustMesh(topo *graph.Topology, id types.MeshID) *types.Mesh {
	m, ok := topo.Mesh(id)
	Expect(ok).To(BeTrue())
	return m
}

func mustBranch(topo *graph.Topology, id types.BranchID) *types.Branch {
	b, ok := topo.Branch(id)
	Expect(ok).To(BeTrue())
	return b
}

// recorder 记录调试回调
type recorder struct {
	calls []string
	err   error
}

func (r *recorder) IsDebug() bool                       { return true }
func (r *recorder) SetDebug(bool)                       {}
func (r *recorder) Init([]*types.Mesh, []*types.Branch) { r.calls = append(r.calls, "init") }
func (r *recorder) System(maths.Matrix, maths.Vector)   { r.calls = append(r.calls, "system") }
func (r *recorder) Factors(l, u maths.Matrix)           { r.calls = append(r.calls, "factors") }
func (r *recorder) Render(io.Writer) error              { return nil }
func (r *recorder) Error(err error)                     { r.err = err }

func (r *recorder) Update(maths.Vector, []*types.Mesh, []*types.Branch) {
	r.calls = append(r.calls, "update")
}

var _ = Describe("Solve", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = logging.IntoContext(context.Background(), logging.NewTestLogger())
	})

	Context("with a single mesh", func() {
		It("yields V/R", func() {
			topo := buildTopology(battery("M1", "B1", "V1", 12), resistor("M1", "B1", "R1", 4))
			res, err := Solve(ctx, topo, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Currents.Get(0)).To(BeNumerically("~", 3, 1e-12))

			b := mustBranch(topo, "B1")
			Expect(b.Current).To(BeNumerically("~", 3, 1e-12))
			Expect(b.Power).To(HaveLen(1))
			Expect(b.Power[0]).To(BeNumerically("~", 36, 1e-9))
			Expect(topo.Solved()).To(BeTrue())
		})
	})

	Context("with disconnected meshes", func() {
		It("builds a diagonal matrix and solves each mesh independently", func() {
			topo := buildTopology(
				battery("M1", "B1", "V1", 9), resistor("M1", "B1", "R1", 3),
				battery("M2", "B2", "V2", -4), resistor("M2", "B2", "R2", 8),
				battery("M3", "B3", "V3", 1), resistor("M3", "B3", "R3", 0.5), resistor("M3", "B4", "R4", 1.5),
			)
			res, err := Solve(ctx, topo, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			z := res.System.Matrix
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					if i != j {
						Expect(z.Get(i, j)).To(BeZero())
					}
				}
				Expect(res.Currents.Get(i)).To(BeNumerically("~", res.System.Voltages.Get(i)/z.Get(i, i), 1e-12))
			}
			Expect(res.Currents.ToDense()).To(Equal([]float64{3, -0.5, 0.5}))
		})
	})

	Context("with the two-mesh series circuit", func() {
		It("assembles [[5,-5],[-5,10]] and matches Cramer's rule", func() {
			topo := twoMeshSeries()
			res, err := Solve(ctx, topo, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())

			Expect(res.System.Matrix.ToDense()).To(Equal([][]float64{{5, -5}, {-5, 10}}))
			Expect(res.System.Voltages.ToDense()).To(Equal([]float64{10, 0}))

			// det = 5*10 - 25 = 25; I_A = 100/25; I_B = 50/25
			Expect(mustMesh(topo, "A").Current).To(Equal(4.0))
			Expect(mustMesh(topo, "B").Current).To(Equal(2.0))
			Expect(mustBranch(topo, "B1").Current).To(Equal(4.0))
			Expect(mustBranch(topo, "B2").Current).To(Equal(2.0))
			Expect(mustBranch(topo, "B3").Current).To(Equal(2.0))
			Expect(mustBranch(topo, "B2").Power).To(Equal([]float64{20}))
			Expect(topo.TotalPower()).To(BeNumerically("~", 40, 1e-12))
			Expect(res.Residual).To(BeNumerically("<", 1e-12))
		})

		It("gives the same answer in oriented mode", func() {
			topo := twoMeshSeries()
			opts := DefaultOptions()
			opts.Mode = ModeOriented
			_, err := Solve(ctx, topo, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(mustBranch(topo, "B2").Current).To(Equal(2.0))
			Expect(mustBranch(topo, "B3").Current).To(Equal(2.0))
		})
	})

	Context("when the accumulated branch current is exactly zero", func() {
		var topo *graph.Topology

		BeforeEach(func() {
			// I_A = 0, I_B = -2
			topo = buildTopology(
				battery("A", "B1", "V1", 10),
				resistor("A", "B2", "R2", 5),
				resistor("B", "B2", "R2", 5),
				battery("B", "B3", "V3", -20),
				resistor("B", "B3", "R3", 5),
			)
		})

		It("keeps the historical heuristic result", func() {
			_, err := Solve(ctx, topo, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(mustMesh(topo, "A").Current).To(Equal(0.0))
			Expect(mustMesh(topo, "B").Current).To(Equal(-2.0))
			Expect(mustBranch(topo, "B2").Current).To(Equal(-2.0))
		})

		It("uses the recorded orientation in oriented mode", func() {
			opts := DefaultOptions()
			opts.Mode = ModeOriented
			_, err := Solve(ctx, topo, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(mustBranch(topo, "B2").Current).To(Equal(2.0))
			Expect(mustBranch(topo, "B3").Current).To(Equal(-2.0))
		})
	})

	Context("with a three-mesh ladder", func() {
		It("places shared impedances symmetrically", func() {
			topo := buildTopology(
				battery("M1", "L1", "V1", 24), resistor("M1", "L1", "R1", 2),
				resistor("M1", "S12", "R12", 4), resistor("M2", "S12", "R12", 4),
				resistor("M2", "S23", "R23", 6), resistor("M3", "S23", "R23", 6),
				resistor("M3", "L3", "R3", 3), battery("M3", "L3", "V3", 6),
			)
			sys, err := Assemble(topo, ModeHeuristic)
			Expect(err).NotTo(HaveOccurred())
			Expect(sys.Matrix.IsSymmetric(0)).To(BeTrue())
			Expect(sys.Matrix.Get(0, 1)).To(Equal(-4.0))
			Expect(sys.Matrix.Get(1, 2)).To(Equal(-6.0))
			Expect(sys.Matrix.Get(0, 2)).To(BeZero())
			Expect(sys.MeshIDs).To(Equal([]types.MeshID{"M1", "M2", "M3"}))

			res, err := Solve(ctx, topo, DefaultOptions())
			Expect(err).NotTo(HaveOccurred())
			back := sys.Matrix.MatrixVectorMultiply(res.Currents)
			for i := 0; i < 3; i++ {
				Expect(back.Get(i)).To(BeNumerically("~", sys.Voltages.Get(i), 1e-9))
			}
		})
	})

	Context("with malformed topologies", func() {
		It("rejects meshes sharing more than one branch", func() {
			topo := buildTopology(
				battery("A", "B1", "V1", 10), resistor("A", "B1", "R1", 1),
				resistor("A", "S1", "RS1", 2), resistor("B", "S1", "RS1", 2),
				resistor("A", "S2", "RS2", 3), resistor("B", "S2", "RS2", 3),
			)
			_, err := Solve(ctx, topo, DefaultOptions())
			Expect(err).To(MatchError(graph.ErrMalformedTopology))
			var te *graph.TopologyError
			Expect(errors.As(err, &te)).To(BeTrue())
			Expect(te.Meshes).To(Equal([]types.MeshID{"A", "B"}))
			Expect(te.Branches).To(Equal([]types.BranchID{"S1", "S2"}))
			Expect(mustMesh(topo, "A").Solved).To(BeFalse())
		})

		It("rejects a mesh without branches", func() {
			topo := buildTopology(battery("A", "B1", "V1", 1), resistor("A", "B1", "R1", 1))
			_, err := topo.AddMesh("EMPTY")
			Expect(err).NotTo(HaveOccurred())
			_, err = Solve(ctx, topo, DefaultOptions())
			Expect(errors.Is(err, graph.ErrMalformedTopology)).To(BeTrue())
		})
	})

	Context("with a singular system", func() {
		It("reports the pivot and leaves currents untouched", func() {
			rec := &recorder{}
			topo := buildTopology(battery("A", "B1", "V1", 5))
			opts := DefaultOptions()
			opts.Debug = rec
			res, err := Solve(ctx, topo, opts)
			Expect(res).To(BeNil())
			Expect(errors.Is(err, maths.ErrSingularSystem)).To(BeTrue())
			var se *maths.SingularError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Pivot).To(Equal(0))
			Expect(se.Stage).To(Equal(maths.StageDecompose))
			Expect(mustMesh(topo, "A").Solved).To(BeFalse())
			Expect(mustBranch(topo, "B1").Power).To(BeNil())
			Expect(rec.err).To(Equal(err))
			Expect(rec.calls).To(Equal([]string{"init", "system"}))
		})
	})

	Context("with debug and parallel options", func() {
		It("calls every debug stage and keeps results identical", func() {
			rec := &recorder{}
			opts := DefaultOptions()
			opts.Debug = rec
			opts.Parallel = 1
			topo := twoMeshSeries()
			res, err := Solve(ctx, topo, opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.calls).To(Equal([]string{"init", "system", "factors", "update"}))
			Expect(res.Currents.ToDense()).To(Equal([]float64{4, 2}))
			Expect(res.Factors.Dim()).To(Equal(2))
		})
	})
})

var _ = Describe("Distribute", func() {
	It("rejects a current vector of the wrong length", func() {
		topo := twoMeshSeries()
		err := Distribute(topo, maths.NewDenseVector(3), ModeHeuristic)
		Expect(errors.Is(err, maths.ErrDimensionMismatch)).To(BeTrue())
		Expect(mustMesh(topo, "A").Solved).To(BeFalse())
	})
})

var _ = Describe("Declaration order", func() {
	// 按网孔分组，网孔首次出现的顺序保持不变
	groups := [][]element{
		{battery("A", "B1", "V1", 10), resistor("A", "B1", "R1", 0.1), resistor("A", "B1", "R2", 0.2), resistor("A", "S1", "RS1", 0.3)},
		{resistor("B", "S1", "RS1", 0.3), resistor("B", "B3", "R3", 0.7), battery("B", "B3", "V3", 1.5), resistor("B", "B3", "R4", 0.2), resistor("B", "S2", "RS2", 0.4)},
		{resistor("C", "S2", "RS2", 0.4), battery("C", "B5", "V5", -2), resistor("C", "B5", "R5", 0.9), resistor("C", "B5", "R6", 0.1)},
	}
	declare := func(reverse bool) *graph.Topology {
		var all []element
		for _, g := range groups {
			for i := range g {
				if reverse {
					all = append(all, g[len(g)-1-i])
				} else {
					all = append(all, g[i])
				}
			}
		}
		return buildTopology(all...)
	}

	It("agrees within tolerance when elements are permuted inside each mesh", func() {
		const tol = 1e-12
		ctx := context.Background()
		forward, permuted := declare(false), declare(true)

		for _, id := range []types.MeshID{"A", "B", "C"} {
			f, p := mustMesh(forward, id), mustMesh(permuted, id)
			Expect(p.Impedance).To(BeNumerically("~", f.Impedance, tol))
			Expect(p.VoltageSource).To(BeNumerically("~", f.VoltageSource, tol))
		}

		fr, err := Solve(ctx, forward, DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		pr, err := Solve(ctx, permuted, DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		Expect(pr.System.MeshIDs).To(Equal(fr.System.MeshIDs))
		n := fr.System.Dim()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				Expect(pr.System.Matrix.Get(i, j)).To(BeNumerically("~", fr.System.Matrix.Get(i, j), tol))
			}
			Expect(pr.System.Voltages.Get(i)).To(BeNumerically("~", fr.System.Voltages.Get(i), tol))
			Expect(pr.Currents.Get(i)).To(BeNumerically("~", fr.Currents.Get(i), tol))
		}
		for _, b := range forward.Branches() {
			Expect(mustBranch(permuted, b.ID).Current).To(BeNumerically("~", b.Current, tol))
		}
		Expect(permuted.TotalPower()).To(BeNumerically("~", forward.TotalPower(), 1e-9))
	})
})

var _ = Describe("ParseMode", func() {
	It("parses known modes", func() {
		Expect(ParseMode("")).To(Equal(ModeHeuristic))
		Expect(ParseMode("oriented")).To(Equal(ModeOriented))
		_, err := ParseMode("sideways")
		Expect(err).To(HaveOccurred())
		Expect(ModeOriented.String()).To(Equal("oriented"))
	})
})
