package ui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelDebug
	LogLevelDebugVerbose
)

// Options configures the Logger.
type Options struct {
	// Out is where we print user-facing logs.
	// In most cases this should be os.Stdout.
	Out io.Writer

	// FullLogWriter, if non-nil, receives all logs in plain text.
	FullLogWriter io.Writer

	// LogLevel control amount of logs print to stdout
	// greater the number => more logs coming out
	// error < info < warn < debug < debugVerbose
	LogLevel LogLevel

	// Component identifies the source of log messages (e.g. "start", "destroy").
	Component string
}

// Logger writes styled lines to Out and plain lines to the full log.
type Logger struct {
	out       io.Writer
	full      io.Writer
	mu        sync.Mutex
	style     styles
	component string

	logLevel LogLevel

	// fullLogBuffer holds log lines written before full log writer is set.
	// Once the full writer is set, this buffer is flushed and cleared.
	fullLogBuffer []string
}

type styles struct {
	spacer   lipgloss.Style
	logInfo  lipgloss.Style
	logWarn  lipgloss.Style
	logError lipgloss.Style
	code     lipgloss.Style
	success  lipgloss.Style
	banner   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		spacer:   lipgloss.NewStyle(),
		logInfo:  lipgloss.NewStyle(),
		logWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // orange-ish
		logError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		code:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")), // cyan
		success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		banner:   lipgloss.NewStyle().Bold(true).Border(lipgloss.NormalBorder()).Padding(0, 1).Margin(1, 0),
	}
}

func New(opts Options) *Logger {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	return &Logger{
		out:       opts.Out,
		full:      opts.FullLogWriter,
		style:     defaultStyles(),
		logLevel:  opts.LogLevel,
		component: opts.Component,
	}
}

func (l *Logger) MuteStdout() (restore func()) {
	l.mu.Lock()
	prev := l.out
	l.out = io.Discard
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.out = prev
		l.mu.Unlock()
	}
}

func (l *Logger) SetComponent(component string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.component = component
}

func (l *Logger) SetFullLogWriter(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.full != nil {
		timestamp := time.Now().Format("2006-01-02T15:04:05.000")
		errMsg := fmt.Sprintf("[%s] [ERR ] attempted to set full log writer when already set, ignoring\n", timestamp)
		fmt.Fprint(l.out, l.style.logError.Render(errMsg))
		return
	}

	l.full = w

	for _, line := range l.fullLogBuffer {
		io.WriteString(l.full, line)
	}
	l.fullLogBuffer = nil
}

// writeFullLogLocked writes to the full log writer if set, otherwise buffers.
// Must be called with l.mu held.
func (l *Logger) writeFullLogLocked(line string) {
	if l.full != nil {
		io.WriteString(l.full, line)
	} else {
		l.fullLogBuffer = append(l.fullLogBuffer, line)
	}
}

// Close closes the full log if it's an io.Closer.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if c, ok := l.full.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (l *Logger) Spacer() {
	l.printLog(false, "", l.style.spacer, "")
}

func (l *Logger) Error(format string, args ...any) {
	l.printLog(false, "ERR ", l.style.logError, format, args...)
}

func (l *Logger) Info(format string, args ...any) {
	silent := l.level() < LogLevelInfo
	l.printLog(silent, "INFO", l.style.logInfo, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	silent := l.level() < LogLevelWarn
	l.printLog(silent, "WARN", l.style.logWarn, format, args...)
}

func (l *Logger) InfoSilent(format string, args ...any) {
	l.printLog(true, "INFO", l.style.logInfo, format, args...)
}

// Code prints command output, always visible.
func (l *Logger) Code(format string, args ...any) {
	l.printLog(false, "", l.style.code, format, args...)
}

func (l *Logger) Success(format string, args ...any) {
	l.printLog(false, "", l.style.success, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.level() >= LogLevelDebug {
		l.printLog(false, "DEBG", l.style.logInfo, format, args...)
	}
}

func (l *Logger) SetLogLevel(logLevel LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logLevel = logLevel
}

func (l *Logger) level() LogLevel {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logLevel
}

func (l *Logger) formatCaller(format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.level() < LogLevelDebugVerbose {
		return msg
	}
	pc, file, line, ok := runtime.Caller(4)
	if !ok {
		file = "?"
		line = 0
	}

	fn := runtime.FuncForPC(pc)
	var fnName string
	if fn != nil {
		fnName = strings.ReplaceAll(fn.Name(), "github.com/CA-CODE-Works/cawebenv", "")
	}

	return fmt.Sprintf("[%s:%d %s] %s", filepath.Base(file), line, fnName, msg)
}

func (l *Logger) printLog(silent bool, level string, style lipgloss.Style, format string, args ...any) {
	msg := l.formatCaller(format, args...)
	timestamp := time.Now().Format("2006-01-02T15:04:05.000")

	l.mu.Lock()
	defer l.mu.Unlock()

	componentTag := ""
	if l.component != "" {
		componentTag = fmt.Sprintf("[%s] ", l.component)
	}

	// full log: no timestamp, TimestampWriter adds it at the destination
	logLine := componentTag + msg + "\n"
	if level != "" {
		logLine = fmt.Sprintf("[%s] %s%s\n", level, componentTag, msg)
	}
	l.writeFullLogLocked(logLine)

	if silent {
		return
	}

	stdoutLine := msg
	if level != "" {
		stdoutLine = fmt.Sprintf("[%s] [%s] %s%s", timestamp, level, componentTag, msg)
	}
	fmt.Fprintln(l.out, style.Render(stdoutLine))
}

// Banner prints a boxed title.
func (l *Logger) Banner(title string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.writeFullLogLocked(fmt.Sprintf("\n===== %s =====\n\n", title))
	fmt.Fprintln(l.out, l.style.banner.Render(title))
}

// Writer returns an io.Writer logging each written line at debug level. The
// full log always gets the lines.
func (l *Logger) Writer() io.Writer {
	return debugWriter{l: l}
}

type debugWriter struct {
	l *Logger
}

func (w debugWriter) Write(p []byte) (int, error) {
	silent := w.l.level() < LogLevelDebug
	for _, line := range strings.Split(strings.TrimRight(string(p), "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		w.l.printLog(silent, "DEBG", w.l.style.logInfo, "%s", line)
	}
	return len(p), nil
}
