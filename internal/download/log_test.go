package download

import (
	"io"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
