package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/einherij/groundlink/pkg/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup configures l from cfg. When a log file is set, output goes to both
// stderr and a rotating file; the returned closer releases the file.
func Setup(l *logrus.Logger, cfg config.LogConfig) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("error parsing log level: %w", err)
	}
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if cfg.File == "" {
		l.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
	}
	l.SetOutput(io.MultiWriter(os.Stderr, w))
	return w, nil
}
