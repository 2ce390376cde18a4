package debug

import (
	"encoding/json"
	"io"

	"github.com/go-logr/logr"

	"meshcircuit/maths"
	"meshcircuit/types"
)

// Record 记录求解过程
type Record struct {
	Meshes   []string    // 网孔列表
	Branches []string    // 支路列表
	Links    [][2]int    // 网孔-支路连接 [网孔序号, 支路序号]
	Matrix   [][]float64 // 阻抗矩阵
	Voltages []float64   // 电压向量
	L        [][]float64 // 下三角
	U        [][]float64 // 上三角
	Currents []float64   // 网孔电流
	Branch   []float64   // 支路电流
	Power    [][]float64 // 电阻功率
	Errors   []string    // 错误信息

	Log logr.Logger `json:"-"`
}

// Init 初始化
func (list *Record) Init(meshes []*types.Mesh, branches []*types.Branch) {
	list.Meshes = make([]string, len(meshes))
	list.Branches = make([]string, len(branches))
	index := make(map[types.BranchID]int, len(branches))
	for i, b := range branches {
		list.Branches[i] = string(b.ID)
		index[b.ID] = i
	}
	list.Links = list.Links[:0]
	for i, m := range meshes {
		list.Meshes[i] = string(m.ID)
		for _, id := range m.Branches() {
			list.Links = append(list.Links, [2]int{i, index[id]})
		}
	}
}

func (Record) IsDebug() bool    { return true }
func (Record) SetDebug(is bool) {}

// System 记录方程组
func (list *Record) System(matrix maths.Matrix, voltages maths.Vector) {
	list.Matrix = matrix.ToDense()
	list.Voltages = voltages.ToDense()
}

// Factors 记录分解结果
func (list *Record) Factors(l, u maths.Matrix) {
	list.L = l.ToDense()
	list.U = u.ToDense()
}

// Update 记录数据
func (list *Record) Update(currents maths.Vector, meshes []*types.Mesh, branches []*types.Branch) {
	list.Currents = currents.ToDense()
	list.Branch = make([]float64, len(branches))
	list.Power = make([][]float64, len(branches))
	for i, b := range branches {
		list.Branch[i] = b.Current
		list.Power[i] = append([]float64{}, b.Power...)
	}
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func (list *Record) Error(err error) {
	list.Errors = append(list.Errors, err.Error())
	list.Log.Error(err, "solve failed")
}
