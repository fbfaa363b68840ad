package log

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger.
// It is built once; Init only swaps where its output goes, so it's safe to call while other goroutines log.
var Logger *zap.Logger
var SugaredLogger *zap.SugaredLogger

// Options configures the global logger.
type Options struct {
	Debug bool
	// File redirects output away from stderr, used while the terminal menu owns the screen.
	File string
}

var (
	current swapCore

	initMu    sync.Mutex
	closeSink = func() {}
)

func init() {
	current.inner = new(atomic.Pointer[zapcore.Core])
	if err := Init(Options{}); err != nil {
		panic(err)
	}

	Logger = zap.New(&current, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SugaredLogger = Logger.WithOptions(zap.AddCallerSkip(1)).Sugar()
	zap.RedirectStdLog(Logger)
}

// Init points the global logger at a new output and level.
// The previous output is synced and, if it was a file, closed.
func Init(opts Options) error {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeDuration = zapcore.StringDurationEncoder

	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	sink := zapcore.Lock(os.Stderr)
	closeFn := func() {}
	if opts.File != "" {
		// no colour codes in a file
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

		var err error
		sink, closeFn, err = zap.Open(opts.File)
		if err != nil {
			return err
		}
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)

	initMu.Lock()
	defer initMu.Unlock()

	if old := current.inner.Swap(&core); old != nil {
		_ = (*old).Sync()
	}
	closeSink()
	closeSink = closeFn
	return nil
}

// swapCore forwards to whichever core Init installed last.
type swapCore struct {
	inner  *atomic.Pointer[zapcore.Core]
	fields []zapcore.Field
}

func (c *swapCore) load() zapcore.Core {
	core := *c.inner.Load()
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core
}

func (c *swapCore) Enabled(l zapcore.Level) bool {
	return (*c.inner.Load()).Enabled(l)
}

func (c *swapCore) With(fields []zapcore.Field) zapcore.Core {
	return &swapCore{
		inner:  c.inner,
		fields: append(c.fields[:len(c.fields):len(c.fields)], fields...),
	}
}

func (c *swapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *swapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.load().Write(ent, fields)
}

func (c *swapCore) Sync() error {
	return (*c.inner.Load()).Sync()
}

func Debug(v ...any) {
	SugaredLogger.Debug(v...)
}

func Info(v ...any) {
	SugaredLogger.Info(v...)
}

func Warn(v ...any) {
	SugaredLogger.Warn(v...)
}

func Error(v ...any) {
	SugaredLogger.Error(v...)
}

func Fatal(v ...any) {
	SugaredLogger.Fatal(v...)
}

func Debugf(tmpl string, v ...any) {
	SugaredLogger.Debugf(tmpl, v...)
}

func Infof(tmpl string, v ...any) {
	SugaredLogger.Infof(tmpl, v...)
}

func Warnf(tmpl string, v ...any) {
	SugaredLogger.Warnf(tmpl, v...)
}

func Errorf(tmpl string, v ...any) {
	SugaredLogger.Errorf(tmpl, v...)
}

func Fatalf(tmpl string, v ...any) {
	SugaredLogger.Fatalf(tmpl, v...)
}
