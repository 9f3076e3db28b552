package identity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vireline/mailbox/identity"
)

func TestNewProducesDistinctIds(t *testing.T) {
	a := identity.New()
	b := identity.New()

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a.String(), b.String())
}

func TestStringIsStable(t *testing.T) {
	id := identity.New()
	assert.Equal(t, id.String(), id.String())
}

func TestZeroValue(t *testing.T) {
	var id identity.ThreadId
	assert.True(t, id.IsZero())
	assert.Equal(t, "tid-none", id.String())

	fresh := identity.New()
	assert.False(t, fresh.IsZero())
}
