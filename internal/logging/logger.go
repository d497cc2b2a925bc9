// Package logging builds the zerolog logger shared by the CLI and the
// lifecycle packages.
package logging

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New는 w로 출력하는 콘솔 로거를 생성한다.
// level이 비어있거나 해석할 수 없으면 기본 레벨(warn, verbose면 debug)을 쓴다.
func New(w io.Writer, level string, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	lvl, ok := ParseLevel(level)
	if !ok {
		lvl = zerolog.WarnLevel
		if verbose {
			lvl = zerolog.DebugLevel
		}
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Str("app", "aiida-project").Logger()
}

// ParseLevel은 레벨 이름을 zerolog.Level로 변환한다.
func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.WarnLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.WarnLevel, false
	}
}
