package logs

import (
	"io"
	"os"
	"sync"

	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

var (
	initOnce sync.Once
	logger   *ui.Logger
)

func Init() {
	initOnce.Do(func() {
		opts := ui.Options{
			Out:      os.Stdout,
			LogLevel: ui.LogLevelWarn,
		}
		logger = ui.New(opts)
		logger.Debug("logs initialized with opts %v", opts)
	})
}

func L() *ui.Logger {
	Init()
	return logger
}

func SetDebugVerbosity(cnt int) {
	switch {
	case cnt <= 0:
		L().SetLogLevel(ui.LogLevelWarn)
	case cnt == 1:
		L().SetLogLevel(ui.LogLevelDebug)
	default:
		L().SetLogLevel(ui.LogLevelDebugVerbose)
	}
}

func SetComponent(component string) {
	L().SetComponent(component)
}

func SetFullLogWriter(w io.Writer) {
	L().SetFullLogWriter(w)
}

func Mute() (restore func()) {
	return L().MuteStdout()
}

func Banner(title string) {
	L().Banner(title)
}

func Spacer() {
	L().Spacer()
}

func Infof(format string, args ...any) {
	L().Info(format, args...)
}

func InfofSilent(format string, args ...any) {
	L().InfoSilent(format, args...)
}

func Debugf(format string, args ...any) {
	L().Debug(format, args...)
}

func Warnf(format string, args ...any) {
	L().Warn(format, args...)
}

func Errorf(format string, args ...any) {
	L().Error(format, args...)
}

// Writer streams external tool output into the log at debug level.
func Writer() io.Writer {
	return L().Writer()
}

// Codef prints command output.
func Codef(format string, args ...any) {
	L().Code(format, args...)
}

func Successf(format string, args ...any) {
	L().Success(format, args...)
}

func PromptConfirm(text string) (bool, error) {
	return L().Confirm(text)
}

func PromptInput(message string, secret bool) (string, error) {
	return L().Input(message, secret)
}

// Close closes the underlying log file, if any.
func Close() error {
	if logger != nil {
		return logger.Close()
	}
	return nil
}
