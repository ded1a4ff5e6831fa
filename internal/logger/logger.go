package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// CreateLogger returns a JSON logger tagged with the service name.
func CreateLogger(serviceName string, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.JSONFormatter{})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	l.AddHook(serviceHook{name: serviceName})
	return l
}

type serviceHook struct {
	name string
}

func (h serviceHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h serviceHook) Fire(e *logrus.Entry) error {
	e.Data["service"] = h.name
	return nil
}
