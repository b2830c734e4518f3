// Package console is the default logger of the notion-md CLI. Entries are
// single key=value lines on stderr so stdout can carry rendered Markdown.
package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/mikecat1024/notion-to-markdown/internal/logging"
	"github.com/mikecat1024/notion-to-markdown/pkg/interfaces"
)

// Level is an entry severity.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "INFO"
}

var levelColors = map[Level]*color.Color{
	LevelTrace: color.New(color.FgHiBlack),
	LevelDebug: color.New(color.FgCyan),
	LevelInfo:  color.New(color.FgGreen),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed),
	LevelFatal: color.New(color.FgRed, color.Bold),
}

// ParseLevel maps a configured level name onto a Level. An empty name is
// LevelInfo; unknown names also yield LevelInfo but report false.
func ParseLevel(name string) (Level, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	switch normalized {
	case "":
		return LevelInfo, true
	case "warning":
		return LevelWarn, true
	}
	for i, label := range levelNames {
		if strings.EqualFold(label, normalized) {
			return Level(i), true
		}
	}
	return LevelInfo, false
}

// Options configures a console provider.
type Options struct {
	// Writer defaults to os.Stderr.
	Writer io.Writer
	// TimeFunc stamps entries when Timestamps is set. Defaults to time.Now.
	TimeFunc func() time.Time
	// MinLevel defaults to LevelInfo.
	MinLevel *Level
	// Timestamps prefixes entries with an RFC 3339 UTC time.
	Timestamps bool
	// Color highlights level labels. fatih/color still disables it when the
	// output is not a terminal.
	Color bool
}

type sink struct {
	mu         sync.Mutex
	w          io.Writer
	now        func() time.Time
	min        Level
	timestamps bool
	color      bool
}

type provider struct {
	sink *sink
}

// NewProvider constructs a console logger provider.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{
		w:          opts.Writer,
		now:        opts.TimeFunc,
		min:        LevelInfo,
		timestamps: opts.Timestamps,
		color:      opts.Color,
	}
	if s.w == nil {
		s.w = os.Stderr
	}
	if s.now == nil {
		s.now = time.Now
	}
	if opts.MinLevel != nil {
		s.min = *opts.MinLevel
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	return &logger{sink: p.sink, fields: map[string]any{"logger": name}}
}

type logger struct {
	sink   *sink
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*logger)(nil)
	_ interfaces.FieldsLogger = (*logger)(nil)
)

func (l *logger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *logger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *logger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *logger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *logger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *logger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *logger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &logger{sink: l.sink, fields: merged, ctx: l.ctx}
}

func (l *logger) WithContext(ctx context.Context) interfaces.Logger {
	return &logger{sink: l.sink, fields: l.fields, ctx: ctx}
}

// emit merges logger, context and call fields, later sources winning.
func (l *logger) emit(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.min {
		return
	}
	fields := maps.Clone(l.fields)
	if fields == nil {
		fields = map[string]any{}
	}
	maps.Copy(fields, logging.ContextFields(l.ctx))
	pairs(fields, args)

	line := l.sink.format(level, msg, fields)

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	_, _ = io.WriteString(l.sink.w, line)
}

// pairs reads args as alternating keys and values. Values without a usable
// string key are stored under arg<position>.
func pairs(dst map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			dst["arg"+strconv.Itoa(i)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "arg" + strconv.Itoa(i+1)
		}
		dst[key] = args[i+1]
	}
}

func (s *sink) format(level Level, msg string, fields map[string]any) string {
	var sb strings.Builder
	if s.timestamps {
		sb.WriteString(s.now().UTC().Format(time.RFC3339))
		sb.WriteByte(' ')
	}
	label := fmt.Sprintf("%-5s", level.String())
	if s.color {
		label = levelColors[level].Sprint(label)
	}
	sb.WriteString(label)
	sb.WriteByte(' ')
	sb.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		sb.WriteByte(' ')
		sb.WriteString(key)
		sb.WriteByte('=')
		sb.WriteString(value(fields[key]))
	}
	sb.WriteByte('\n')
	return sb.String()
}

func value(v any) string {
	var s string
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		s = x
	case error:
		s = x.Error()
	case time.Duration:
		return x.String()
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprint(x)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
