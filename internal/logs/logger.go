package logs

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger is the application-wide logger (initialized via Init).
var Logger *logrus.Logger

// Options configures the logger.
type Options struct {
	Level  string // trace|debug|info|warning|error|fatal
	Format string // text|json
	File   string // log file path/prefix; empty means stdout only
}

// Init sets up the global logger from the given options. An
// unparseable level falls back to info rather than failing startup.
func Init(opts Options) {
	l := logrus.New()

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if opts.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	out := io.Writer(os.Stdout)
	if opts.File != "" {
		name := fmt.Sprintf("%s-%s.log", opts.File, time.Now().Format("2006-01-02"))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			l.Fatalf("open log file %s: %v", name, err)
		}
		out = io.MultiWriter(f, os.Stdout)
	}
	l.SetOutput(out)

	Logger = l
}
