package database

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowThreshold = time.Second

// gormLogger forwards GORM's SQL log to logrus.
type gormLogger struct {
	l     logrus.FieldLogger
	level logger.LogLevel
}

func NewLogger(l logrus.FieldLogger, level logger.LogLevel) logger.Interface {
	return &gormLogger{l: l, level: level}
}

func (g *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{l: g.l, level: level}
}

func (g *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Info {
		g.l.Infof(msg, args...)
	}
}

func (g *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Warn {
		g.l.Warnf(msg, args...)
	}
}

func (g *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	if g.level >= logger.Error {
		g.l.Errorf(msg, args...)
	}
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.l.WithError(err).WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows}).Error(sql)
	case elapsed > slowThreshold && g.level >= logger.Warn:
		sql, rows := fc()
		g.l.WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows}).Warn("slow query: " + sql)
	case g.level >= logger.Info:
		sql, rows := fc()
		g.l.WithFields(logrus.Fields{"elapsed": elapsed, "rows": rows}).Debug(sql)
	}
}
