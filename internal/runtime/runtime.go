// Package runtime holds the process-wide state of a cawebenv invocation: the
// root context, shutdown hooks, the run log and the terminal guard.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"

	hostappconfig "github.com/CA-CODE-Works/cawebenv/internal/apps/cawebenv/config"
	"github.com/CA-CODE-Works/cawebenv/internal/logs"
	"github.com/CA-CODE-Works/cawebenv/internal/ui"
)

type Runtime struct {
	runID string

	ctx        context.Context    // global context
	cancelFunc context.CancelFunc // cancelFunc of global context

	mu sync.Mutex

	wg              sync.WaitGroup
	shutdownTimeout time.Duration

	term *TerminalGuard

	firstFailErr error

	logWriter io.Writer
}

func (rt *Runtime) LogWriter() io.Writer {
	return rt.logWriter
}

func (rt *Runtime) CancelCtx() {
	rt.cancelFunc()
}

func (rt *Runtime) Ctx() context.Context {
	return rt.ctx
}

func (rt *Runtime) GOOS() string {
	return runtime.GOOS
}

func (rt *Runtime) RunID() string {
	return rt.runID
}

func (rt *Runtime) Term() *TerminalGuard {
	return rt.term
}

type runtimeKey struct{}

// NewHostRuntime creates the runtime of one invocation. Its context is
// cancelled on SIGINT or SIGTERM, so child processes and network calls stop
// with the user.
func NewHostRuntime() *Runtime {
	baseCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	baseCtx, cancel := context.WithCancel(baseCtx)
	rt := &Runtime{
		runID: strconv.FormatInt(time.Now().Unix(), 10) + "-" + uuid.New().String()[:8],
		cancelFunc: func() {
			cancel()
			stopSignals()
		},
		term:            NewTerminalGuard(),
		shutdownTimeout: 5 * time.Second,
	}
	rt.term.Save()
	// The runtime rides on its own context so command handlers can get it
	// back from cmd.Context(). Nothing below the cmd layer should do that.
	rt.ctx = context.WithValue(baseCtx, runtimeKey{}, rt)
	return rt
}

func FromContext(ctx context.Context) *Runtime {
	v := ctx.Value(runtimeKey{})
	if v == nil {
		return nil
	}
	rt, _ := v.(*Runtime)
	return rt
}

func FromContextOrPanic(ctx context.Context) *Runtime {
	rt := FromContext(ctx)
	if rt == nil {
		panic(errors.New("runtime not found in this context"))
	}
	return rt
}

// OpenRunLog mirrors every log line of this run into a timestamped file
// under the cawebenv home. Failures only warn.
func (rt *Runtime) OpenRunLog() {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if rt.logWriter != nil {
		return
	}

	w, err := ui.OpenLogFile(hostappconfig.RunLogPath(rt.runID))
	if err != nil {
		logs.Warnf("can't open log file: %v", err)
		return
	}
	rt.logWriter = w
	logs.SetFullLogWriter(w)
}

// GoNamed runs fn in a new goroutine with panic recovery. A panic is
// recorded as the first failure and cancels the runtime context.
// Wait returns that failure.
func (rt *Runtime) GoNamed(name string, fn func()) {
	if name == "" {
		name = "anonymous"
	}
	rt.wg.Go(func() {
		logs.Debugf("%s goroutine start", name)
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v\n%s", r, debug.Stack())
				rt.mu.Lock()
				if rt.firstFailErr == nil {
					rt.firstFailErr = err
					// cancel everyone on first failure
					rt.cancelFunc()
				}
				rt.mu.Unlock()
			}
		}()

		fn()
		logs.Debugf("%s goroutine finish", name)
	})
}

func (rt *Runtime) Wait() error {
	rt.wg.Wait()

	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.firstFailErr
}

// OnShutdown runs fn once the runtime context is done, with a fresh context
// bounded by the shutdown timeout.
func (rt *Runtime) OnShutdown(fn func(ctx context.Context)) {
	rt.GoNamed("OnShutdown", func() {
		<-rt.ctx.Done()

		cleanupCtx, cancel := context.WithTimeout(context.Background(), rt.shutdownTimeout)
		defer cancel()

		fn(cleanupCtx)
	})
}

// Finalize handles both panic and normal exit.
// Call it in a defer at the top of main.
func (rt *Runtime) Finalize(appName, helpHint string, execErr *error) {
	if r := recover(); r != nil {
		rt.term.Restore()

		fmt.Fprintf(os.Stderr, "%s panic: %v\n", appName, r)
		fmt.Fprintf(os.Stderr, "%s\n", debug.Stack())
		fmt.Fprintln(os.Stderr, "")
		if helpHint != "" {
			fmt.Fprintln(os.Stderr, helpHint)
		}

		// cancel & wait so OnShutdown hooks run
		rt.CancelCtx()
		_ = rt.Wait()

		logs.Close()
		os.Exit(1)
	}

	rt.term.Restore()

	// trigger OnShutdown hooks
	rt.CancelCtx()
	waitErr := rt.Wait()

	exitCode := 0
	if execErr != nil && *execErr != nil {
		logs.Errorf("%s error: %v", appName, *execErr)
		if helpHint != "" {
			fmt.Fprintln(os.Stderr, helpHint)
		}
		exitCode = 1
	} else if waitErr != nil {
		logs.Errorf("%s fail reason: %v", appName, waitErr)
		exitCode = 1
	}

	logs.Close()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
