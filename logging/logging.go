// Package logging 构建 zap 日志并以 logr 接口对外提供
package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel 解析日志级别
// 支持 debug/info/warn/error，以及 logr 的详细级别 v1、v2...
func ParseLevel(level string) (zapcore.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if strings.HasPrefix(level, "v") {
		var v int
		if _, err := fmt.Sscanf(level, "v%d", &v); err != nil || v < 0 {
			return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", level)
		}
		return zapcore.Level(-v), nil
	}
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// NewLogger 创建控制台日志
func NewLogger(level string) (logr.Logger, *zap.Logger, error) {
	l, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("build logger: %w", err)
	}
	return zapr.NewLogger(zl), zl, nil
}

// NewTestLogger 测试使用的日志（zap 开发配置），同时替换 zap 全局日志
func NewTestLogger() logr.Logger {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return logr.Discard()
	}
	zap.ReplaceGlobals(zl)
	return zapr.NewLogger(zl)
}

// IntoContext 将日志放入上下文
func IntoContext(ctx context.Context, log logr.Logger) context.Context {
	return logr.NewContext(ctx, log)
}
