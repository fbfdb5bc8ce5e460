package logsvc

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trezcool/academia/core"
)

type zerologLogger struct {
	zl zerolog.Logger
}

var _ core.Logger = (*zerologLogger)(nil)

// NewZerologLogger returns the default structured logger. Debug mode gets a
// human console writer and the debug level.
func NewZerologLogger(out io.Writer, conf *core.Config) core.Logger {
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	if conf.Debug {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen})
	} else {
		zl = zerolog.New(out).Level(zerolog.InfoLevel)
	}
	zl = zl.With().Timestamp().Str("app", conf.AppName).Logger()
	return &zerologLogger{zl: zl}
}

func (l zerologLogger) log(ev *zerolog.Event, msg string, args []interface{}) {
	for _, arg := range args {
		switch a := arg.(type) {
		case error:
			ev = ev.Err(a)
		case map[string]interface{}:
			ev = ev.Fields(a)
		default:
			ev = ev.Interface("detail", a)
		}
	}
	ev.Msg(msg)
}

func (l zerologLogger) Debug(msg string, args ...interface{}) { l.log(l.zl.Debug(), msg, args) }
func (l zerologLogger) Info(msg string, args ...interface{})  { l.log(l.zl.Info(), msg, args) }
func (l zerologLogger) Warn(msg string, args ...interface{})  { l.log(l.zl.Warn(), msg, args) }
func (l zerologLogger) Error(msg string, args ...interface{}) { l.log(l.zl.Error(), msg, args) }
func (l zerologLogger) Fatal(msg string, args ...interface{}) { l.log(l.zl.Fatal(), msg, args) }
