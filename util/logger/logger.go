package logger

import (
	"io"
	"log/slog"
	"time"
)

// Setup 安装默认 slog logger，时间统一为 UTC RFC3339Nano
// 日志写到 w (通常是 stderr)，stdout 只留给状态行
func Setup(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
			}
			return a
		},
	})

	l := slog.New(h)
	slog.SetDefault(l)
	return l
}
