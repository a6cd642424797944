package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger logger estructurado del servicio, inyectado por constructor.
type Logger struct {
	zl zerolog.Logger
}

// New crea el logger. En development escribe consola legible; en cualquier
// otro entorno, JSON a stdout. level acepta debug|info|warn|error; cualquier
// otro valor cae en info.
func New(env, level string) *Logger {
	zl := zerolog.New(output(env)).Level(parseLevel(level)).With().Timestamp().Logger()
	// Redirigir el logger global para librerías que lo usen
	log.Logger = zl
	return &Logger{zl: zl}
}

func output(env string) io.Writer {
	if env == "development" {
		return zerolog.ConsoleWriter{Out: os.Stdout}
	}
	return os.Stdout
}

func parseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }
