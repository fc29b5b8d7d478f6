package errors

import (
	"sync"
	"time"
)

// Message is one status line entry.
type Message struct {
	Text  string
	Level Level
	At    time.Time
}

// TUIHandler keeps the latest message for the browser's status line and
// notifies onMessage of each new one.
type TUIHandler struct {
	mu        sync.Mutex
	latest    Message
	set       bool
	onMessage func(Message)
	now       func() time.Time
}

// NewTUIHandler returns a handler calling onMessage, which may be nil.
func NewTUIHandler(onMessage func(Message)) *TUIHandler {
	return &TUIHandler{onMessage: onMessage, now: time.Now}
}

func (h *TUIHandler) Error(msg string) { h.push(LevelError, msg) }

func (h *TUIHandler) Warning(msg string) { h.push(LevelWarning, msg) }

func (h *TUIHandler) Info(msg string) { h.push(LevelInfo, msg) }

func (h *TUIHandler) Success(msg string) { h.push(LevelSuccess, msg) }

func (h *TUIHandler) push(level Level, text string) {
	h.mu.Lock()
	h.latest = Message{Text: text, Level: level, At: h.now()}
	h.set = true
	msg, cb := h.latest, h.onMessage
	h.mu.Unlock()

	if cb != nil {
		cb(msg)
	}
}

// Latest returns the current message, if any.
func (h *TUIHandler) Latest() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest, h.set
}

// Clear drops the current message.
func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest, h.set = Message{}, false
}
