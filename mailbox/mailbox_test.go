package mailbox_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/mailbox"
	"github.com/vireline/mailbox/message"
	"github.com/vireline/mailbox/metrics"
)

// fakeLinks is a minimal mailbox.Links for exercising Process in
// isolation, without depending on package thread.
type fakeLinks struct {
	owner    identity.ThreadId
	hasOwner bool
	peers    map[identity.ThreadId]bool
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{peers: make(map[identity.ThreadId]bool)}
}

func (f *fakeLinks) HasLink(peer identity.ThreadId) bool { return f.peers[peer] }
func (f *fakeLinks) RemoveLink(peer identity.ThreadId)   { delete(f.peers, peer) }
func (f *fakeLinks) Owner() (identity.ThreadId, bool)    { return f.owner, f.hasOwner }
func (f *fakeLinks) ClearOwner()                         { f.hasOwner = false }

// waitAndProcess blocks for the next wake-up signal and runs exactly one
// drain pass, for tests that want to process envelopes as they arrive
// instead of racing a detached goroutine against Submit.
func waitAndProcess(t *testing.T, box *mailbox.Mailbox, links mailbox.Links, handle mailbox.Handler) int {
	t.Helper()
	<-box.Notify()
	return box.Process(links, handle)
}

func TestSubmitFailsImmediatelyOnClosedMailbox(t *testing.T) {
	box := mailbox.New(identity.New())
	box.Close(nil)

	_, err := box.Submit(context.Background(), message.NewStandard("hello"), true)
	assert.ErrorIs(t, err, mailbox.ErrClosedMailbox)
}

func TestProcessDeliversInFIFOOrder(t *testing.T) {
	box := mailbox.New(identity.New())
	links := newFakeLinks()

	go func() {
		_, _ = box.Submit(context.Background(), message.NewStandard("a"), false)
		_, _ = box.Submit(context.Background(), message.NewStandard("b"), false)
		_, _ = box.Submit(context.Background(), message.NewStandard("c"), false)
	}()

	var order []string
	for len(order) < 3 {
		waitAndProcess(t, box, links, func(ctx *mailbox.Context) {
			order = append(order, ctx.Message().(string))
		})
	}

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.EqualValues(t, 3, box.Delivered())
}

func TestSubmitRoundTripsResponse(t *testing.T) {
	box := mailbox.New(identity.New())
	links := newFakeLinks()

	replyCh := make(chan *message.Message, 1)
	errCh := make(chan error, 1)
	go func() {
		reply, err := box.Submit(context.Background(), message.NewStandard(&message.Request{Method: "echo", Args: "hi"}), true)
		replyCh <- reply
		errCh <- err
	}()

	waitAndProcess(t, box, links, func(ctx *mailbox.Context) {
		req, ok := ctx.Message().(*message.Request)
		require.True(t, ok)
		ctx.Respond(message.Ok("echo:" + req.Args))
	})

	require.NoError(t, <-errCh)
	reply := <-replyCh
	resp, ok := reply.AsResponse()
	require.True(t, ok)
	assert.Equal(t, message.Success, resp.Status)
	assert.Equal(t, "echo:hi", resp.Data)
}

func TestUnrespondedRequestGetsDefaultFailure(t *testing.T) {
	box := mailbox.New(identity.New())
	links := newFakeLinks()

	replyCh := make(chan *message.Message, 1)
	errCh := make(chan error, 1)
	go func() {
		reply, err := box.Submit(context.Background(), message.NewStandard(&message.Request{Method: "noop"}), true)
		replyCh <- reply
		errCh <- err
	}()

	waitAndProcess(t, box, links, func(ctx *mailbox.Context) {
		// Handler intentionally ignores the request.
	})

	require.NoError(t, <-errCh)
	reply := <-replyCh
	resp, ok := reply.AsResponse()
	require.True(t, ok)
	assert.Equal(t, message.Failed, resp.Status)
}

func TestCloseDrainsAllWaitersWithFailure(t *testing.T) {
	box := mailbox.New(identity.New())

	results := make(chan *message.Message, 3)
	errs := make(chan error, 3)
	started := make(chan struct{}, 3)
	for i := 0; i < 3; i++ {
		go func() {
			started <- struct{}{}
			reply, err := box.Submit(context.Background(), message.NewStandard("x"), true)
			results <- reply
			errs <- err
		}()
	}
	for i := 0; i < 3; i++ {
		<-started
	}
	<-box.Notify()
	box.Close(nil)

	for i := 0; i < 3; i++ {
		err := <-errs
		reply := <-results
		require.NoError(t, err)
		resp, ok := reply.AsResponse()
		require.True(t, ok)
		assert.Equal(t, message.Failed, resp.Status)
	}
	assert.True(t, box.IsClosed())
}

func TestLinkDeadForOwnerProducesOwnerTerminated(t *testing.T) {
	box := mailbox.New(identity.New())
	owner := identity.New()
	links := &fakeLinks{owner: owner, hasOwner: true, peers: map[identity.ThreadId]bool{}}

	go func() {
		_, _ = box.Submit(context.Background(), message.NewLinkDead(owner), false)
	}()

	var got *mailbox.OwnerTerminated
	waitAndProcess(t, box, links, func(ctx *mailbox.Context) {
		got = ctx.Message().(*mailbox.OwnerTerminated)
	})

	require.NotNil(t, got)
	assert.Equal(t, owner, got.Owner)
	assert.False(t, links.hasOwner)
}

func TestLinkDeadForPeerProducesLinkTerminated(t *testing.T) {
	box := mailbox.New(identity.New())
	peer := identity.New()
	links := &fakeLinks{peers: map[identity.ThreadId]bool{peer: true}}

	go func() {
		_, _ = box.Submit(context.Background(), message.NewLinkDead(peer), false)
	}()

	var got *mailbox.LinkTerminated
	waitAndProcess(t, box, links, func(ctx *mailbox.Context) {
		got = ctx.Message().(*mailbox.LinkTerminated)
	})

	require.NotNil(t, got)
	assert.Equal(t, peer, got.Peer)
	assert.False(t, links.HasLink(peer))
}

func TestUnhandledTerminationPanics(t *testing.T) {
	box := mailbox.New(identity.New())
	owner := identity.New()
	links := &fakeLinks{owner: owner, hasOwner: true, peers: map[identity.ThreadId]bool{}}

	go func() {
		_, _ = box.Submit(context.Background(), message.NewLinkDead(owner), false)
	}()
	<-box.Notify()

	assert.Panics(t, func() {
		box.Process(links, func(ctx *mailbox.Context) {
			ctx.Unhandled()
		})
	})
}

func TestSetRecorderRegistersDepthCallback(t *testing.T) {
	box := mailbox.New(identity.New())
	meter := noop.NewMeterProvider().Meter("test")
	rec, err := metrics.New(meter, "tid-1")
	require.NoError(t, err)

	box.SetRecorder(rec)

	links := newFakeLinks()
	go func() {
		_, _ = box.Submit(context.Background(), message.NewStandard("x"), false)
	}()
	waitAndProcess(t, box, links, func(ctx *mailbox.Context) {})

	assert.EqualValues(t, 1, box.Delivered())
}

func TestCloseUpdatesOwnerForQueuedLinkDead(t *testing.T) {
	box := mailbox.New(identity.New())
	owner := identity.New()
	links := &fakeLinks{owner: owner, hasOwner: true, peers: map[identity.ThreadId]bool{}}

	errCh := make(chan error, 1)
	go func() {
		_, err := box.Submit(context.Background(), message.NewLinkDead(owner), true)
		errCh <- err
	}()
	<-box.Notify()

	box.Close(links)

	require.NoError(t, <-errCh)
	assert.False(t, links.hasOwner)
}

func TestShutdownDeliversSignal(t *testing.T) {
	box := mailbox.New(identity.New())
	links := newFakeLinks()
	target := identity.New()

	go func() {
		_, _ = box.Submit(context.Background(), message.NewShutdown(target), false)
	}()

	var got *mailbox.ShutdownSignal
	waitAndProcess(t, box, links, func(ctx *mailbox.Context) {
		got = ctx.Message().(*mailbox.ShutdownSignal)
	})

	require.NotNil(t, got)
	assert.Equal(t, target, got.Target)
}
