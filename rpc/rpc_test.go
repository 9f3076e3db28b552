package rpc_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/log"
	"github.com/vireline/mailbox/mailbox"
	"github.com/vireline/mailbox/message"
	"github.com/vireline/mailbox/rpc"
)

type fakeLinks struct{}

func (fakeLinks) HasLink(identity.ThreadId) bool   { return false }
func (fakeLinks) RemoveLink(identity.ThreadId)     {}
func (fakeLinks) Owner() (identity.ThreadId, bool) { return identity.Zero, false }
func (fakeLinks) ClearOwner()                      {}

// scenario S1: pow worker.
func TestQueryPowScenario(t *testing.T) {
	box := mailbox.New(identity.New())
	go func() {
		<-box.Notify()
		rpc.Process(fakeLinks{}, box, func(ctx *mailbox.Context) {
			req, ok := ctx.Message().(*message.Request)
			require.True(t, ok)
			if req.Method == "pow" && req.Args == "2" {
				ctx.Respond(message.Ok("4"))
				return
			}
			ctx.Respond(message.Failure("unknown method"))
		})
	}()

	resp := rpc.Query(context.Background(), box, &message.Request{Method: "pow", Args: "2"})
	assert.Equal(t, message.Success, resp.Status)
	assert.Equal(t, "4", resp.Data)
}

func TestQueryStampsRequestTime(t *testing.T) {
	box := mailbox.New(identity.New())
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var stamped time.Time
	go func() {
		<-box.Notify()
		rpc.Process(fakeLinks{}, box, func(ctx *mailbox.Context) {
			req := ctx.Message().(*message.Request)
			stamped = req.RequestTime
			ctx.Respond(message.Ok(""))
		})
	}()

	rpc.Query(context.Background(), box, &message.Request{Method: "noop"}, rpc.WithClock(func() time.Time { return fixed }))
	assert.Equal(t, fixed, stamped)
}

func TestQueryOnClosedMailboxReturnsFailed(t *testing.T) {
	box := mailbox.New(identity.New())
	box.Close(nil)

	resp := rpc.Query(context.Background(), box, &message.Request{Method: "noop"})
	assert.Equal(t, message.Failed, resp.Status)
}

// scenario S3: closed mailbox after shutdown.
func TestShutdownThenQueryFails(t *testing.T) {
	box := mailbox.New(identity.New())
	terminate := make(chan struct{})

	go func() {
		for {
			<-box.Notify()
			stop := false
			rpc.Process(fakeLinks{}, box, func(ctx *mailbox.Context) {
				if _, ok := ctx.Message().(*mailbox.ShutdownSignal); ok {
					ctx.Respond(message.Ok(""))
					stop = true
				}
			})
			if stop {
				box.Close(nil)
				close(terminate)
				return
			}
		}
	}()

	require.NoError(t, rpc.Shutdown(context.Background(), box, box.ID()))
	<-terminate

	resp := rpc.Query(context.Background(), box, &message.Request{Method: "noop"})
	assert.Equal(t, message.Failed, resp.Status)
}

func TestQueryOnClosedMailboxLogsWarning(t *testing.T) {
	box := mailbox.New(identity.New())
	box.Close(nil)

	var buf bytes.Buffer
	resp := rpc.Query(context.Background(), box, &message.Request{Method: "noop"}, rpc.WithLogger(log.NewZap(log.WarnLevel, &buf)))

	assert.Equal(t, message.Failed, resp.Status)
	assert.Contains(t, buf.String(), "query")
}

func TestSendDoesNotBlockForReply(t *testing.T) {
	box := mailbox.New(identity.New())
	received := make(chan any, 1)
	go func() {
		<-box.Notify()
		rpc.Process(fakeLinks{}, box, func(ctx *mailbox.Context) {
			received <- ctx.Message()
		})
	}()

	require.NoError(t, rpc.Send(context.Background(), box, "ping"))
	assert.Equal(t, "ping", <-received)
}
