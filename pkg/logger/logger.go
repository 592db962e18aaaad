package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// Logger é a interface para logging
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// SlogLogger implementa Logger sobre log/slog com saída estruturada em JSON
type SlogLogger struct {
	log *slog.Logger
}

// NewLogger cria uma nova instância de Logger com o nível informado
// ("debug", "info", "warn" ou "error"; qualquer outro valor vira "info")
func NewLogger(level string) Logger {
	return newSlogLogger(os.Stdout, level)
}

// NewNopLogger cria um Logger que descarta todas as mensagens
func NewNopLogger() Logger {
	return newSlogLogger(io.Discard, "error")
}

func newSlogLogger(w io.Writer, level string) *SlogLogger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(level),
	})
	return &SlogLogger{log: slog.New(handler)}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Info registra uma mensagem de informação
func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.write(slog.LevelInfo, msg, keysAndValues)
}

// Error registra uma mensagem de erro
func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.write(slog.LevelError, msg, keysAndValues)
}

// Debug registra uma mensagem de debug
func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.write(slog.LevelDebug, msg, keysAndValues)
}

// Warn registra uma mensagem de aviso
func (l *SlogLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.write(slog.LevelWarn, msg, keysAndValues)
}

// write monta o registro com o frame de quem chamou Info/Error/Debug/Warn como origem
func (l *SlogLogger) write(level slog.Level, msg string, keysAndValues []interface{}) {
	ctx := context.Background()
	if !l.log.Enabled(ctx, level) {
		return
	}

	var pcs [1]uintptr
	// pula runtime.Callers, write e o método público
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(keysAndValues...)
	_ = l.log.Handler().Handle(ctx, r)
}
