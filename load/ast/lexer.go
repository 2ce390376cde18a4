package ast

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// netlistLexer 网表词法规则
var netlistLexer = lexer.MustSimple([]lexer.SimpleRule{
	// # 注释与 // 行注释
	{Name: "Comment", Pattern: `(#|//)[^\n]*`},
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// .value 等命令
	{Name: "Command", Pattern: `\.[a-zA-Z]+`},

	// 带引号的标识符，允许空格与点号
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Number", Pattern: `[-+]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][-+]?[0-9]+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_\-]*`},
	{Name: "Punct", Pattern: `[{};%]`},
})
