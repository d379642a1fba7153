package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_Level(t *testing.T) {
	logger := SetupLogging("debug")
	assert.Equal(t, logrus.DebugLevel, logger.Level)

	logger = SetupLogging("nonsense")
	assert.Equal(t, logrus.InfoLevel, logger.Level)
}

func TestLogData_EmitsFieldsAndTimings(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.Out = buf
	logger.Formatter = &logrus.JSONFormatter{}

	data := NewLogData(logger)
	data.AddData("transaction_id", "abc")
	done := data.AddTiming("insert")
	done()

	data.Log().Info("PDV.RecordTransaction.Complete")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["transaction_id"])
	assert.Contains(t, line, "insert_ms")
	assert.Equal(t, "PDV.RecordTransaction.Complete", line["msg"])
}
