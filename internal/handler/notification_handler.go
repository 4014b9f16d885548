package handler

import (
	"context"
	"fmt"
	"io"
	"sync"

	"applydi-client/internal/pkg/logger"
	"applydi-client/pkg/events"

	"github.com/fatih/color"
)

type palette struct {
	success *color.Color
	info    *color.Color
	failure *color.Color
}

var (
	lightPalette = palette{
		success: color.New(color.FgGreen),
		info:    color.New(color.FgBlue),
		failure: color.New(color.FgRed),
	}
	darkPalette = palette{
		success: color.New(color.FgHiGreen, color.Bold),
		info:    color.New(color.FgHiCyan),
		failure: color.New(color.FgHiRed, color.Bold),
	}
)

// NotificationHandler renders notification events as one-line toasts and
// records every other event in the log.
type NotificationHandler struct {
	mu       sync.Mutex
	out      io.Writer
	darkMode func() bool
	logger   logger.ILogger
}

func NewNotificationHandler(out io.Writer, darkMode func() bool, log logger.ILogger) *NotificationHandler {
	if darkMode == nil {
		darkMode = func() bool { return false }
	}
	return &NotificationHandler{out: out, darkMode: darkMode, logger: log}
}

// Start subscribes to bus until ctx ends.
func (h *NotificationHandler) Start(ctx context.Context, bus *events.Bus) error {
	return bus.Subscribe(ctx, h.Handle)
}

func (h *NotificationHandler) Handle(e events.Envelope) {
	if e.Type != events.TypeNotification {
		h.logger.Debug("EVENTS", "Event: "+e.Type, e.Payload)
		return
	}

	p := lightPalette
	if h.darkMode() {
		p = darkPalette
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	message := e.String("message")
	switch e.String("level") {
	case events.LevelSuccess:
		p.success.Fprintf(h.out, "✓ %s\n", message)
	case events.LevelError:
		p.failure.Fprintf(h.out, "✗ %s\n", message)
	default:
		p.info.Fprintf(h.out, "• %s\n", message)
	}
}

// Printf writes a plain line in the info colour.
func (h *NotificationHandler) Printf(format string, args ...interface{}) {
	p := lightPalette
	if h.darkMode() {
		p = darkPalette
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	p.info.Fprint(h.out, fmt.Sprintf(format, args...))
}
