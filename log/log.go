// Package log is the diagnostic channel. Startup failures panic through it and every
// failed mint/wrap attempt is written here with its run id.
package log

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/sirupsen/logrus"
)

var std = logrus.New()

func init() {
	std.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	std.SetOutput(os.Stderr)
}

// ToFile rotates the diagnostic log daily under dir and keeps a week of it.
func ToFile(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	w, err := rotatelogs.New(
		filepath.Join(dir, "diag.%Y%m%d.log"),
		rotatelogs.WithLinkName(filepath.Join(dir, "diag.log")),
		rotatelogs.WithRotationTime(24*time.Hour),
		rotatelogs.WithMaxAge(7*24*time.Hour),
	)
	if err != nil {
		return err
	}
	std.SetOutput(w)
	return nil
}

func WithField(key string, value interface{}) *logrus.Entry {
	return std.WithField(key, value)
}

func WithFields(fields logrus.Fields) *logrus.Entry {
	return std.WithFields(fields)
}

func Infof(format string, args ...interface{}) {
	std.Infof(format, args...)
}

func Errorf(format string, args ...interface{}) {
	std.Errorf(format, args...)
}

func Panicf(format string, args ...interface{}) {
	std.Panicf(format, args...)
}
