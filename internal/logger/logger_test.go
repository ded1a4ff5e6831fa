package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestCreateLoggerLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, CreateLogger("svc", "debug").GetLevel())
	assert.Equal(t, logrus.InfoLevel, CreateLogger("svc", "loud").GetLevel())
}

func TestCreateLoggerTagsService(t *testing.T) {
	l := CreateLogger("it-inventory", "info")
	hook := test.NewLocal(l)
	l.SetOutput(nopWriter{})

	l.Info("started")

	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, "it-inventory", entry.Data["service"])
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
