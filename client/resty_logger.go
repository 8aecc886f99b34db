package client

import "github.com/octabyte/hostel-gommon/utils/logger"

// restyLogger routes resty's internal messages through the process logger.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	logger.LogErrorf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	logger.LogWarnf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	logger.LogDebugf(format, v...)
}
