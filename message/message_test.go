package message_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/message"
)

func TestStandardRoundTripsRequestAndResponse(t *testing.T) {
	req := &message.Request{Method: "echo", Args: "x"}
	m := message.NewStandard(req)

	got, ok := m.AsRequest()
	assert.True(t, ok)
	assert.Same(t, req, got)

	_, ok = m.AsResponse()
	assert.False(t, ok)
}

func TestLinkDeadAndShutdownCarryThreadId(t *testing.T) {
	id := identity.New()

	dead := message.NewLinkDead(id)
	got, ok := dead.AsThreadId()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, message.LinkDead, dead.Type)

	shutdown := message.NewShutdown(id)
	got, ok = shutdown.AsThreadId()
	assert.True(t, ok)
	assert.Equal(t, id, got)
	assert.Equal(t, message.Shutdown, shutdown.Type)
}

func TestRequestExpired(t *testing.T) {
	now := time.Now()
	req := &message.Request{RequestTime: now.Add(-2 * time.Second), Timeout: time.Second}
	assert.True(t, req.Expired(now))

	req.Timeout = 0
	assert.False(t, req.Expired(now))

	fresh := &message.Request{RequestTime: now, Timeout: time.Minute}
	assert.False(t, fresh.Expired(now))
}

func TestResponseConstructors(t *testing.T) {
	assert.Equal(t, message.Success, message.Ok("42").Status)
	assert.Equal(t, message.Failed, message.Failure("bad").Status)
	assert.Equal(t, message.Timeout, message.TimedOut().Status)
	assert.Equal(t, "", message.TimedOut().Data)
}
