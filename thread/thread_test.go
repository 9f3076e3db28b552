package thread_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/vireline/mailbox/mailbox"
	"github.com/vireline/mailbox/registry"
	"github.com/vireline/mailbox/thread"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRoot() *thread.ThreadContext {
	return thread.New(thread.NewDirectory(), registry.New())
}

func TestOwnerTidMissingOnRoot(t *testing.T) {
	root := newRoot()
	_, err := root.OwnerTid()
	assert.ErrorIs(t, err, thread.ErrTidMissing)
}

func TestSpawnRecordsOwnerAndLink(t *testing.T) {
	parent := newRoot()

	childReady := make(chan *thread.ThreadContext, 1)
	child := parent.Spawn(func(c *thread.ThreadContext) {
		childReady <- c
		c.Process(func(ctx *mailbox.Context) {})
	})

	got := <-childReady
	owner, err := got.OwnerTid()
	require.NoError(t, err)
	assert.Equal(t, parent.Tid(), owner)
	assert.True(t, parent.HasLink(child.Tid()))

	parent.Mailbox().Close(nil)
	child.Mailbox().Close(nil)
}

// scenario S4: parent terminates, child observes OwnerTerminated.
func TestOwnerDeathDeliversOwnerTerminated(t *testing.T) {
	parent := newRoot()

	notified := make(chan struct{})
	var observed *mailbox.OwnerTerminated

	child := parent.Spawn(func(c *thread.ThreadContext) {
		for {
			<-c.Mailbox().Notify()
			c.Process(func(ctx *mailbox.Context) {
				if ot, ok := ctx.Message().(*mailbox.OwnerTerminated); ok {
					observed = ot
					close(notified)
				}
			})
			if c.Mailbox().IsClosed() {
				return
			}
		}
	})

	require.NoError(t, parent.Cleanup(context.Background()))

	select {
	case <-notified:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OwnerTerminated")
	}

	require.NotNil(t, observed)
	assert.Equal(t, parent.Tid(), observed.Owner)

	child.Mailbox().Close(nil)
}

// scenario S5: two children spawned from one parent; terminating one
// removes it from the parent's link set after the parent observes
// LinkDead.
func TestLinkDeadRemovesPeerFromParentLinks(t *testing.T) {
	parent := newRoot()

	processed := make(chan struct{}, 4)
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-parent.Mailbox().Notify():
				parent.Process(func(ctx *mailbox.Context) {})
				processed <- struct{}{}
			case <-stop:
				return
			}
		}
	}()

	child1 := parent.Spawn(func(c *thread.ThreadContext) {})
	child2 := parent.Spawn(func(c *thread.ThreadContext) {})

	require.NoError(t, child1.Cleanup(context.Background()))

	<-processed
	assert.False(t, parent.HasLink(child1.Tid()))
	assert.True(t, parent.HasLink(child2.Tid()))

	close(stop)
	require.NoError(t, child2.Cleanup(context.Background()))
	require.NoError(t, parent.Cleanup(context.Background()))
}

func TestCleanupUnregistersNames(t *testing.T) {
	reg := registry.New()
	root := thread.New(thread.NewDirectory(), reg)

	assert.True(t, reg.Register("svc", root.Tid(), root.Mailbox()))
	require.NoError(t, root.Cleanup(context.Background()))

	_, ok := reg.Locate("svc")
	assert.False(t, ok)
}

func TestCleanupDeliversLinkDeadToPeer(t *testing.T) {
	parent := newRoot()
	child := parent.Spawn(func(c *thread.ThreadContext) {})

	require.NoError(t, parent.Cleanup(context.Background()))

	<-child.Mailbox().Notify()
	var gotPeer bool
	child.Process(func(ctx *mailbox.Context) {
		if ot, ok := ctx.Message().(*mailbox.OwnerTerminated); ok {
			gotPeer = ot.Owner == parent.Tid()
		}
	})
	assert.True(t, gotPeer)
}
