package registry_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vireline/mailbox/identity"
	"github.com/vireline/mailbox/log"
	"github.com/vireline/mailbox/registry"
)

type openBox struct{}

func (openBox) IsClosed() bool { return false }

type closedBox struct{}

func (closedBox) IsClosed() bool { return true }

func TestDoubleRegisterScenario(t *testing.T) {
	reg := registry.New()
	t1 := identity.New()
	t2 := identity.New()

	assert.True(t, reg.Register("svc", t1, openBox{}))
	assert.False(t, reg.Register("svc", t2, openBox{}))

	got, ok := reg.Locate("svc")
	assert.True(t, ok)
	assert.Equal(t, t1, got)

	assert.True(t, reg.Unregister("svc"))
	assert.True(t, reg.Register("svc", t2, openBox{}))

	got, ok = reg.Locate("svc")
	assert.True(t, ok)
	assert.Equal(t, t2, got)
}

func TestRegisterRejectsClosedMailbox(t *testing.T) {
	reg := registry.New()
	assert.False(t, reg.Register("svc", identity.New(), closedBox{}))

	_, ok := reg.Locate("svc")
	assert.False(t, ok)
}

func TestLocateMissingReturnsFalse(t *testing.T) {
	reg := registry.New()
	_, ok := reg.Locate("nope")
	assert.False(t, ok)
}

func TestUnregisterAllRemovesEveryNameForThread(t *testing.T) {
	reg := registry.New()
	tid := identity.New()

	assert.True(t, reg.Register("a", tid, openBox{}))
	assert.True(t, reg.Register("b", tid, openBox{}))

	reg.UnregisterAll(tid)

	_, ok := reg.Locate("a")
	assert.False(t, ok)
	_, ok = reg.Locate("b")
	assert.False(t, ok)
}

func TestUnregisterUnknownNameReturnsFalse(t *testing.T) {
	reg := registry.New()
	assert.False(t, reg.Unregister("missing"))
}

func TestWithLoggerLogsRegisterAndUnregister(t *testing.T) {
	var buf bytes.Buffer
	reg := registry.New(registry.WithLogger(log.NewZap(log.DebugLevel, &buf)))
	tid := identity.New()

	assert.True(t, reg.Register("svc", tid, openBox{}))
	assert.Contains(t, buf.String(), `registered "svc"`)

	assert.True(t, reg.Unregister("svc"))
	assert.Contains(t, buf.String(), `unregistered "svc"`)
}
