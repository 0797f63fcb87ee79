package notify

import (
	"context"
	"log/slog"
	"sync"
)

// Level classifies a user-facing message.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Message is one transient notification emitted by a store operation.
type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Notifier is the transient-notification sink consumed by the view layer.
// Every mutating store operation emits exactly one classified,
// human-readable message through it.
type Notifier interface {
	Success(ctx context.Context, text string)
	Info(ctx context.Context, text string)
	Error(ctx context.Context, text string)
}

// LogNotifier publishes notifications to the structured log. It stands in
// for a real delivery channel the same way a mock sender would.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Success(ctx context.Context, text string) {
	n.emit(ctx, LevelSuccess, text)
}

func (n *LogNotifier) Info(ctx context.Context, text string) {
	n.emit(ctx, LevelInfo, text)
}

func (n *LogNotifier) Error(ctx context.Context, text string) {
	n.emit(ctx, LevelError, text)
}

func (n *LogNotifier) emit(ctx context.Context, level Level, text string) {
	n.logger.InfoContext(ctx, "notification",
		slog.String("severity", string(level)),
		slog.String("text", text),
	)
}

// Recorder is a Notifier that captures messages for test assertions.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// NewRecorder creates an empty recording notifier.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Success(ctx context.Context, text string) {
	r.record(LevelSuccess, text)
}

func (r *Recorder) Info(ctx context.Context, text string) {
	r.record(LevelInfo, text)
}

func (r *Recorder) Error(ctx context.Context, text string) {
	r.record(LevelError, text)
}

func (r *Recorder) record(level Level, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Level: level, Text: text})
}

// Messages returns a copy of all recorded messages in emit order.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Last returns the most recent message, or a zero Message if none exist.
func (r *Recorder) Last() Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		return Message{}
	}
	return r.messages[len(r.messages)-1]
}

// Reset discards all recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
