package multisig

import (
	"context"
	"testing"

	"github.com/iov-one/quorum/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	a := weavetest.NewCondition()
	b := weavetest.NewCondition()
	auth := Authenticate{}

	bg := context.Background()
	assert.Empty(t, auth.GetConditions(bg))
	assert.False(t, auth.HasAddress(bg, a.Address()))

	ctx := withSigner(bg, a)
	nested := withSigner(ctx, b)

	assert.Len(t, auth.GetConditions(ctx), 1)
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.False(t, auth.HasAddress(ctx, b.Address()))

	// Nested grants keep the outer ones.
	assert.Len(t, auth.GetConditions(nested), 2)
	assert.True(t, auth.HasAddress(nested, a.Address()))
	assert.True(t, auth.HasAddress(nested, b.Address()))
}
