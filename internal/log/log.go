// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// EnvVar holds the log level name, e.g. DEBUG or WARN.
const EnvVar = "BBLCTL_LOG"

// InitLogger sets up Apex with a custom handler and a log level from the
// BBLCTL_LOG env variable.
func InitLogger() {
	level := strings.ToLower(os.Getenv(EnvVar))
	if level == "" {
		level = "error"
	}
	log.SetHandler(&CustomHandler{})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.ErrorLevel
	}
	log.SetLevel(lvl)
}

// CustomHandler formats log messages as "timestamp L message". Output goes to
// stderr unless Writer is set so it never mixes with command output.
type CustomHandler struct {
	Writer io.Writer
	Now    func() time.Time
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	timestamp := now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(w, "%s %.1s %s%s\n", timestamp, level, e.Message, fields.String())
	return err
}
