package logging

import (
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "Jan _2 2006 15:04:05.000000"

//Setup sets the level of logger and, when path is not empty, copies every entry
// at or above that level to path as JSON.
func Setup(logger *logrus.Logger, verbose bool, path string) {
	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	if path == "" {
		return
	}

	pathMap := lfshook.PathMap{}
	for _, l := range logrus.AllLevels {
		if l <= level {
			pathMap[l] = path
		}
	}
	hook := lfshook.NewHook(
		pathMap,
		&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
		},
	)
	logger.Hooks.Add(hook)
}
