package bot

import (
	"context"
	"creator-yield/internal/counter"
	"creator-yield/internal/storage/memory"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newResponder() *Responder {
	return NewResponder(counter.New(memory.NewStorage()))
}

func TestReplyYield(t *testing.T) {
	reply := newResponder().Reply(context.Background(), "/yield creator26")

	assert.Contains(t, reply, "*creator26*")
	assert.Contains(t, reply, "9.98% – 27.09%")
	assert.Contains(t, reply, "*16.34%*")
	assert.Contains(t, reply, "- Dec: 16.34%")
	assert.Equal(t, 12, strings.Count(reply, "\n- "))
}

func TestReplyBand(t *testing.T) {
	r := newResponder()
	assert.Equal(t, "📊 *creator8*: 11.95% – 31.79%", r.Reply(context.Background(), "/band creator8"))
	assert.Equal(t, "📊 *creator8*: 11.95% – 31.79%", r.Reply(context.Background(), "/band@YieldBot  creator8 "))
}

func TestReplyInvestors(t *testing.T) {
	reply := newResponder().Reply(context.Background(), "/investors mrbeast")
	assert.Equal(t, fmt.Sprintf("👥 *mrbeast*: %d активных инвесторов", counter.Baseline("mrbeast")), reply)
}

func TestReplyUsage(t *testing.T) {
	r := newResponder()
	assert.Equal(t, helpText, r.Reply(context.Background(), "/help"))
	assert.Contains(t, r.Reply(context.Background(), "/yield"), "Используй: /yield")
	assert.Contains(t, r.Reply(context.Background(), "hello"), "/help")
}

func TestFixEncoding(t *testing.T) {
	assert.Equal(t, "creator8", FixEncoding("creator8"))
	// "Привет" в windows-1251
	assert.Equal(t, "Привет", FixEncoding("\xcf\xf0\xe8\xe2\xe5\xf2"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "/yield creator8", SanitizeInput("  /yield  creator8\t"))
}
