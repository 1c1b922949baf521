package log

// 基于zap的日志初始化：一次运行的日志写入追加式文本文件，可选同时输出到标准输出

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Plugin = zapcore.Core

type Config struct {
	Level  string // DEBUG、INFO、WARN、ERROR，大小写均可
	File   string
	Stdout bool
}

/*
输入一个或多个日志核心，输出一个zap日志实例

传入多个日志核心时，日志会同时写入每一个核心；DPanic及以上级别附带堆栈
*/
func NewLogger(plugins ...Plugin) *zap.Logger {
	return zap.New(NewTee(plugins...), zap.AddStacktrace(zapcore.DPanicLevel))
}

func NewTee(plugins ...Plugin) Plugin {
	if len(plugins) == 1 {
		return plugins[0]
	}
	return zapcore.NewTee(plugins...)
}

func NewStdoutPlugin(enabler zapcore.LevelEnabler) Plugin {
	return zapcore.NewCore(ConsoleEncoder(), zapcore.Lock(os.Stdout), enabler)
}

// lumberjack没有暴露Sync，额外返回的closer需要在进程退出前关闭，保证内容刷到磁盘
func NewFilePlugin(path string, enabler zapcore.LevelEnabler) (Plugin, io.Closer) {
	w := rotatingFile(path)
	return zapcore.NewCore(ConsoleEncoder(), zapcore.AddSync(w), enabler), w
}

/*
输入一个日志配置，输出一个zap日志实例、一个关闭函数和一个error

级别无法解析时返回错误；关闭函数刷新缓冲并关闭日志文件
*/
func Setup(cfg Config) (*zap.Logger, func() error, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse log level: %w", err)
	}

	file, closer := NewFilePlugin(cfg.File, level)
	plugins := []Plugin{file}
	if cfg.Stdout {
		plugins = append(plugins, NewStdoutPlugin(level))
	}
	logger := NewLogger(plugins...)

	return logger, func() error {
		// 终端上的os.Stdout不支持fsync，忽略Sync的错误
		_ = logger.Sync()
		return closer.Close()
	}, nil
}
