package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("info"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""), "nivel desconocido cae en info")
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
}

func TestNew_NivelConfigurado(t *testing.T) {
	l := New("production", "warn")
	assert.Equal(t, zerolog.WarnLevel, l.zl.GetLevel())

	l = New("development", "")
	assert.Equal(t, zerolog.InfoLevel, l.zl.GetLevel())
}

func TestOutput_ConsolaSoloEnDevelopment(t *testing.T) {
	_, isConsole := output("development").(zerolog.ConsoleWriter)
	assert.True(t, isConsole)

	_, isConsole = output("production").(zerolog.ConsoleWriter)
	assert.False(t, isConsole)
}
