package types

import "fmt"

// ElementKind 支路元件类型
type ElementKind uint8

// 电路元件类型常量定义
const (
	KindUnknown    ElementKind = iota // 未知类型
	KindBattery                       // 电池（电动势）
	KindResistance                    // 电阻
)

// kindName 元件映射
var kindName = map[ElementKind]string{
	KindUnknown:    "unknown",
	KindBattery:    "battery",
	KindResistance: "resistance",
}

// String 返回元件类型的字符串表示
func (k ElementKind) String() string {
	if name, ok := kindName[k]; ok {
		return name
	}
	return "unknown"
}

var mapName = map[string]ElementKind{
	"battery":    KindBattery,
	"resistance": KindResistance,
	"resistor":   KindResistance,
}

// ParseElementKind 通过名称获取类型
func ParseElementKind(name string) (ElementKind, error) {
	if k, ok := mapName[name]; ok {
		return k, nil
	}
	return KindUnknown, fmt.Errorf("未知元件类型: %q", name)
}

// Orientation 网孔绕行方向与支路参考方向的关系
type Orientation int8

const (
	OrientationAuto    Orientation = 0  // 未声明，由首次引用决定
	OrientationForward Orientation = 1  // 同向
	OrientationReverse Orientation = -1 // 反向
)

// String 返回方向的字符串表示
func (o Orientation) String() string {
	switch o {
	case OrientationForward:
		return "forward"
	case OrientationReverse:
		return "reverse"
	}
	return "auto"
}

// Sign 方向对应的符号，auto 视为同向
func (o Orientation) Sign() float64 {
	if o == OrientationReverse {
		return -1
	}
	return 1
}

// ParseOrientation 解析方向声明
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "", "auto":
		return OrientationAuto, nil
	case "forward", "+", "cw":
		return OrientationForward, nil
	case "reverse", "-", "ccw":
		return OrientationReverse, nil
	}
	return OrientationAuto, fmt.Errorf("未知支路方向: %q", s)
}
