package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

/*
无输入，输出一个Zap日志库的编码器配置

日志级别大写，时间使用ISO8601格式，不输出调用者、堆栈和logger名称，同一条日志在文件和终端中保持相同的列
*/
func EncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.CallerKey = zapcore.OmitKey
	cfg.StacktraceKey = zapcore.OmitKey
	cfg.NameKey = zapcore.OmitKey
	return cfg
}

// 按行输出"时间\t级别\t消息\t字段"
func ConsoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(EncoderConfig())
}

// 日志文件最大200MB，轮转后不压缩，多次运行追加写入同一个文件
func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:  path,
		MaxSize:   200,
		LocalTime: true,
	}
}
