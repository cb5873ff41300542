// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{
		Writer: &buf,
		Now:    func() time.Time { return time.Date(2025, 10, 1, 12, 30, 0, 0, time.UTC) },
	}

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	logger.WithError(errors.New("boom")).WithField("cache", "players").Warn("fetch failed")
	logger.Debugf("cache hit: %d", 42)

	assert.Equal(t,
		"2025-10-01 12:30:00 W fetch failed cache=players error=boom\n"+
			"2025-10-01 12:30:00 D cache hit: 42\n",
		buf.String())
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"", log.ErrorLevel},
		{"debug", log.DebugLevel},
		{"WARN", log.WarnLevel},
		{"nonsense", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(EnvVar, tt.env)
			InitLogger()
			assert.Equal(t, tt.want, log.Log.(*log.Logger).Level)
		})
	}
}
