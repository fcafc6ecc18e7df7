// MIT License
//
// Copyright (c) 2023-2026 Starling Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package log

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapLoggerWritesExpectedLevelAndMessage(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(DebugLevel, buffer)
	require.Equal(t, DebugLevel, logger.LogLevel())

	logger.Info("hello starling")
	flushLogger(t, logger)

	msg, err := extractMessage(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, "hello starling", msg)

	lvl, err := extractLevel(buffer.Bytes())
	require.NoError(t, err)
	require.Equal(t, InfoLevel.String(), lvl)
}

func TestZapLoggerRespectsMinimumLevel(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(WarningLevel, buffer)

	require.False(t, logger.Enabled(DebugLevel))
	require.False(t, logger.Enabled(InfoLevel))
	require.True(t, logger.Enabled(WarningLevel))
	require.True(t, logger.Enabled(ErrorLevel))

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	flushLogger(t, logger)
	require.Empty(t, buffer.Bytes())
}

func TestZapLoggerWith(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(DebugLevel, buffer).With("actor", "counter-1")

	logger.Info("incremented")
	flushLogger(t, logger.(*Zap))

	var payload map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &payload))
	actor, err := strconv.Unquote(string(payload["actor"]))
	require.NoError(t, err)
	require.Equal(t, "counter-1", actor)
}

func TestZapLoggerFlush(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	logger.Info("buffered")
	require.NoError(t, logger.Flush())
}

func TestZapLoggerLogOutput(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	outputs := logger.LogOutput()
	require.Len(t, outputs, 1)
	require.Equal(t, buffer, outputs[0])
}

// nolint
func TestZapLoggerPanic(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	assert.PanicsWithValue(t, "boom", func() {
		logger.Panic("boom")
	})
}

// nolint
func TestZapLoggerFatal(t *testing.T) {
	if os.Getenv("GO_TEST_ZAP_FATAL") == "1" {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Fatal("fatal message")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestZapLoggerFatal$", "-test.v")
	cmd.Env = append(os.Environ(), "GO_TEST_ZAP_FATAL=1")

	_, err := cmd.CombinedOutput()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
}

func flushLogger(t *testing.T, logger *Zap) {
	t.Helper()
	require.NoError(t, logger.logger.Sync())
}

func extractMessage(raw []byte) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", err
	}
	for k, v := range c {
		if k == "msg" {
			return strconv.Unquote(string(v))
		}
	}
	return "", nil
}

func extractLevel(raw []byte) (string, error) {
	c := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &c); err != nil {
		return "", err
	}
	for k, v := range c {
		if k == "level" {
			return strconv.Unquote(string(v))
		}
	}
	return "", nil
}
