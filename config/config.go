// Package config 求解器配置：默认值、配置文件、环境变量与命令行参数
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"meshcircuit/logging"
	"meshcircuit/mesh"
	"meshcircuit/types"
)

// EnvPrefix 环境变量前缀
const EnvPrefix = "MESHCIRCUIT"

// 配置键
const (
	KeyTolerance   = "tolerance"
	KeyOrientation = "orientation"
	KeyParallel    = "parallel"
	KeyOutput      = "output"
	KeyPlot        = "plot"
	KeyChart       = "chart"
	KeyRecord      = "record"
	KeyMetrics     = "metrics"
	KeyLogLevel    = "log-level"
)

// ErrInvalidConfig 配置值非法
var ErrInvalidConfig = errors.New("config: invalid value")

// Config 求解器配置
type Config struct {
	Tolerance   float64 `mapstructure:"tolerance"`   // 主元判零阈值
	Orientation string  `mapstructure:"orientation"` // heuristic | oriented
	Parallel    int     `mapstructure:"parallel"`    // 并行分解阈值，0 关闭
	Output      string  `mapstructure:"output"`      // 文本报告路径，空为 <输入>_solved.txt
	Plot        string  `mapstructure:"plot"`        // 功率图路径
	Chart       string  `mapstructure:"chart"`       // HTML 图表路径
	Record      string  `mapstructure:"record"`      // JSON 过程记录路径
	Metrics     string  `mapstructure:"metrics"`     // prometheus textfile 路径
	LogLevel    string  `mapstructure:"log-level"`   // 日志级别
}

// New 创建带默认值与环境变量绑定的 viper 实例
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyTolerance, types.PivotTolerance)
	v.SetDefault(KeyOrientation, mesh.ModeHeuristic.String())
	v.SetDefault(KeyParallel, types.ParallelThreshold)
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyPlot, "")
	v.SetDefault(KeyChart, "")
	v.SetDefault(KeyRecord, "")
	v.SetDefault(KeyMetrics, "")
	v.SetDefault(KeyLogLevel, "info")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// AddFlags 注册命令行参数
func AddFlags(fs *pflag.FlagSet) {
	fs.Float64(KeyTolerance, types.PivotTolerance, "pivot magnitude at or below which the system is singular")
	fs.String(KeyOrientation, mesh.ModeHeuristic.String(), "branch current distribution (heuristic, oriented)")
	fs.Int(KeyParallel, types.ParallelThreshold, "matrix dimension from which LU rows are computed in parallel (0 disables)")
	fs.StringP(KeyOutput, "o", "", "text report path (default <input>_solved.txt)")
	fs.String(KeyPlot, "", "write a power bar chart (png, svg or pdf)")
	fs.String(KeyChart, "", "write an HTML chart page of the solution")
	fs.String(KeyRecord, "", "write a JSON record of the system, factors and currents")
	fs.String(KeyMetrics, "", "write solve metrics in prometheus textfile format")
}

// BindFlags 将命令行参数绑定到 viper
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return fmt.Errorf("config: bind flags: %w", err)
	}
	return nil
}

// Load 读取配置文件（可为空）并解析配置
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate 检查配置
func (c *Config) Validate() error {
	var errs []error
	if c.Tolerance < 0 {
		errs = append(errs, fmt.Errorf("%w: tolerance %g is negative", ErrInvalidConfig, c.Tolerance))
	}
	if _, err := mesh.ParseMode(c.Orientation); err != nil {
		errs = append(errs, fmt.Errorf("%w: orientation: %v", ErrInvalidConfig, err))
	}
	if c.Parallel < 0 {
		errs = append(errs, fmt.Errorf("%w: parallel %d is negative", ErrInvalidConfig, c.Parallel))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log-level: %v", ErrInvalidConfig, err))
	}
	return errors.Join(errs...)
}

// MeshOptions 转换为求解参数
func (c *Config) MeshOptions() mesh.Options {
	opts := mesh.DefaultOptions()
	opts.Tolerance = c.Tolerance
	opts.Parallel = c.Parallel
	if mode, err := mesh.ParseMode(c.Orientation); err == nil {
		opts.Mode = mode
	}
	return opts
}
