package notify

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogNotifierWritesToLogger(t *testing.T) {
	var buf bytes.Buffer
	notifier := NewLogNotifier(log.New(&buf, "", 0))

	notifier.Notify("Badge earned!", "🚀 First Contact")

	assert.Contains(t, buf.String(), "Badge earned!")
	assert.Contains(t, buf.String(), "First Contact")
}

func TestDisabledEmailNotifierDropsMessages(t *testing.T) {
	notifier := &EmailNotifier{enabled: false}

	// Must be a silent no-op.
	notifier.Notify("title", "message")
	assert.False(t, notifier.IsEnabled())
}
