// Package logger предоставляет уровневый логгер с printf-интерфейсом поверх log/slog.
// Записи пишутся в JSON, что позволяет собирать их как структурированные события.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger уровневый логгер сервиса
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// New создает логгер, который пишет в stdout и (если указан) в файл
func New(filePath string, level string) (*Logger, error) {
	var (
		out  io.Writer = os.Stdout
		file *os.File
	)

	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: create log dir: %w", err)
			}
		}

		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		file = f
		out = io.MultiWriter(os.Stdout, f)
	}

	return NewWithWriter(out, level, file), nil
}

// NewWithWriter создает логгер поверх произвольного writer
// closer может быть nil
func NewWithWriter(w io.Writer, level string, closer *os.File) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{
		slog: slog.New(handler),
		file: closer,
	}
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return NewWithWriter(io.Discard, "error", nil)
}

// With возвращает логгер с дополнительными полями
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), file: l.file}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.slog.Debug(fmt.Sprintf(format, v...))
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.slog.Info(fmt.Sprintf(format, v...))
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.slog.Warn(fmt.Sprintf(format, v...))
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.slog.Error(fmt.Sprintf(format, v...))
}

// Fatal пишет сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.slog.Error(fmt.Sprintf(format, v...), slog.Bool("fatal", true))
	l.Close()
	os.Exit(1)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Sync()
		_ = l.file.Close()
	}
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
