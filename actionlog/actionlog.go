// Package actionlog writes a timestamped line for every action taken from the menu.
// The file is only ever appended to.
package actionlog

import (
	"emperror.dev/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Log struct {
	logger *zap.SugaredLogger
	close  func()
}

// New opens path for appending, creating it if needed.
// An empty path returns a Log that discards everything.
func New(path string) (*Log, error) {
	if path == "" {
		return &Log{logger: zap.NewNop().Sugar(), close: func() {}}, nil
	}

	sink, closeSink, err := zap.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening action log %q", path)
	}

	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:          "time",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeTime:       zapcore.RFC3339TimeEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
	})
	core := zapcore.NewCore(enc, sink, zapcore.InfoLevel)

	return &Log{logger: zap.New(core).Sugar(), close: closeSink}, nil
}

// Record appends one line.
func (l *Log) Record(tmpl string, args ...any) {
	l.logger.Infof(tmpl, args...)
}

// Close flushes and closes the file.
func (l *Log) Close() error {
	err := l.logger.Sync()
	l.close()
	return err
}
