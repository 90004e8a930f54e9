package notify

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestConsole_WritesPrefixedLines(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)

	c.Error("Task not found")
	c.Success("Task created successfully")

	want := "❌ Task not found\n✅ Task created successfully\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestCollector_KeepsOrderAndLevels(t *testing.T) {
	c := NewCollector()
	if msgs := c.Messages(); msgs == nil || len(msgs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", msgs)
	}

	c.Error("title_c: required")
	c.Success("ok")

	msgs := c.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0] != (Message{Level: LevelError, Message: "title_c: required"}) {
		t.Errorf("first message mismatch: %+v", msgs[0])
	}
	if msgs[1].Level != LevelSuccess {
		t.Errorf("second message level mismatch: %+v", msgs[1])
	}
}

func TestCollector_ConcurrentUse(t *testing.T) {
	c := NewCollector()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Error(fmt.Sprintf("failure %d", i))
		}(i)
	}
	wg.Wait()

	if got := len(c.Messages()); got != 20 {
		t.Fatalf("expected 20 messages, got %d", got)
	}
}
