// Package notify liefert Benachrichtigungen an den Benutzer aus, das Gegenstück
// zu den Toasts der Web-Oberfläche.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
)

// Notifier nimmt benutzerrelevante Meldungen entgegen
type Notifier interface {
	Error(msg string)
	Success(msg string)
}

// Message ist eine gesammelte Benachrichtigung
type Message struct {
	Level   Level  `json:"level" yaml:"level"`
	Message string `json:"message" yaml:"message"`
}

// Console schreibt Meldungen mit Emoji-Präfix auf einen Writer (Standard: stderr)
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{out: w}
}

func (c *Console) Error(msg string) {
	c.write("❌", msg)
}

func (c *Console) Success(msg string) {
	c.write("✅", msg)
}

func (c *Console) write(prefix, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, "%s %s\n", prefix, msg)
}

// Collector sammelt Meldungen, z.B. pro HTTP-Request. Sicher für parallele Nutzung.
type Collector struct {
	mu       sync.Mutex
	messages []Message
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) Error(msg string) {
	c.add(LevelError, msg)
}

func (c *Collector) Success(msg string) {
	c.add(LevelSuccess, msg)
}

func (c *Collector) add(level Level, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{Level: level, Message: msg})
}

// Messages liefert eine Kopie; nie nil
func (c *Collector) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

type nop struct{}

func (nop) Error(string)   {}
func (nop) Success(string) {}

// Nop verwirft alle Meldungen
var Nop Notifier = nop{}
