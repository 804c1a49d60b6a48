package gl

import (
	"log"
	"os"

	"github.com/triplefi/go-logger/logger"
)

// GasLimit is the gas sent with relay transactions. The keystore signer estimates its own.
var GasLimit uint64 = 300000

// OutLogger global logger
var OutLogger *logger.Logger

func CreateLogFiles() {
	var err error
	if err = os.MkdirAll("./logs", os.ModePerm); err != nil {
		log.Panic("Create dir './logs' error. " + err.Error())
	}
	if OutLogger, err = logger.New("logs/out.log", 1, 3, 0); err != nil {
		log.Panic("Create Outlogger file error. " + err.Error())
	}
}

func Info(format string, v ...interface{}) {
	if OutLogger != nil {
		OutLogger.Info(format, v...)
	}
}

func Error(format string, v ...interface{}) {
	if OutLogger != nil {
		OutLogger.Error(format, v...)
	}
}
