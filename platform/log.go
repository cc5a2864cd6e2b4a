package platform

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type LogFormatter struct {
}

func (m *LogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
	newLog := fmt.Sprintf("[%s] [%s] %s\n", timestamp, entry.Level, entry.Message)

	b.WriteString(newLog)
	return b.Bytes(), nil
}

var Logger = newLogger()

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&LogFormatter{})
	return logger
}

// InitLogger attaches a dated log file to the application logger in addition
// to stderr. Called once from main; before that Logger writes to stderr only.
func InitLogger(config Config) {
	if err := os.MkdirAll(config.LogDir, os.ModePerm); err != nil {
		Logger.Errorf("create log dir error, %s", err)
		return
	}
	timer := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s/%s-safai.log", config.LogDir, timer)
	logFile, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0666)
	if err != nil {
		Logger.Errorf("open log file error, %s", err)
		return
	}
	Logger.SetOutput(io.MultiWriter(logFile, os.Stderr))
}
