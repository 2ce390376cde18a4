// Package ast 提供网孔网表的语法树与解析器。
// 网表由 .value 变量定义与 mesh 块组成，mesh 块内包含 branch 块，
// branch 块内逐行声明电池与电阻：
//
//	.value VCC 10
//	mesh M1 {
//	    branch B1 forward {
//	        battery V1 %VCC;
//	        resistance R1 5;
//	        resistance "R 2" 1;
//	    }
//	}
package ast

import (
	"fmt"
	"io"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Netlist 网表根节点
type Netlist struct {
	Pos     lexer.Position
	Entries []*Entry `parser:"@@*"`
}

// Entry 顶层条目
type Entry struct {
	Value *ValueNode `parser:"  @@"`
	Mesh  *MeshNode  `parser:"| @@"`
}

// ValueNode 变量定义 .value NAME 数值
type ValueNode struct {
	Pos   lexer.Position
	Name  string  `parser:"'.value' @Ident"`
	Value float64 `parser:"@Number"`
}

// MeshNode 网孔块
type MeshNode struct {
	Pos      lexer.Position
	ID       string        `parser:"'mesh' @(Ident | Number | String) '{'"`
	Branches []*BranchNode `parser:"@@* '}'"`
}

// BranchNode 支路块，方向可省略
type BranchNode struct {
	Pos       lexer.Position
	ID        string         `parser:"'branch' @(Ident | Number | String)"`
	Direction string         `parser:"@('forward' | 'reverse')?"`
	Elements  []*ElementNode `parser:"'{' @@* '}'"`
}

// ElementNode 元件声明
type ElementNode struct {
	Pos   lexer.Position
	Kind  string    `parser:"@('battery' | 'resistance' | 'resistor')"`
	ID    string    `parser:"@(Ident | Number | String)"`
	Value *Quantity `parser:"@@ ';'"`
}

// Quantity 数值或变量引用
type Quantity struct {
	Number *float64 `parser:"  @Number"`
	Var    *string  `parser:"| '%' @Ident"`
}

// Variables 收集全部变量定义，重复定义返回错误
func (n *Netlist) Variables() (map[string]float64, error) {
	vars := map[string]float64{}
	for _, e := range n.Entries {
		if e.Value == nil {
			continue
		}
		if _, ok := vars[e.Value.Name]; ok {
			return nil, fmt.Errorf("line %d: variable %q defined twice", e.Value.Pos.Line, e.Value.Name)
		}
		vars[e.Value.Name] = e.Value.Value
	}
	return vars, nil
}

// Meshes 按声明顺序返回网孔块
func (n *Netlist) Meshes() []*MeshNode {
	var meshes []*MeshNode
	for _, e := range n.Entries {
		if e.Mesh != nil {
			meshes = append(meshes, e.Mesh)
		}
	}
	return meshes
}

// Resolve 求出元件数值
func (q *Quantity) Resolve(vars map[string]float64) (float64, error) {
	switch {
	case q == nil:
		return 0, fmt.Errorf("missing value")
	case q.Number != nil:
		return *q.Number, nil
	case q.Var != nil:
		v, ok := vars[*q.Var]
		if !ok {
			return 0, fmt.Errorf("undefined variable %q", *q.Var)
		}
		return v, nil
	}
	return 0, fmt.Errorf("missing value")
}

var parser = participle.MustBuild[Netlist](
	participle.Lexer(netlistLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.Unquote("String"),
	participle.UseLookahead(2),
)

// Parse 解析网表
func Parse(filename string, r io.Reader) (*Netlist, error) {
	n, err := parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse netlist: %w", err)
	}
	return n, nil
}

// ParseString 解析网表字符串
func ParseString(filename, s string) (*Netlist, error) {
	n, err := parser.ParseString(filename, s)
	if err != nil {
		return nil, fmt.Errorf("parse netlist: %w", err)
	}
	return n, nil
}
