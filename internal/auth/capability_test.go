package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	admin := New(7, "head@armhub.uz", "ADMIN")
	assert.True(t, admin.Admin)
	assert.True(t, admin.Authenticated())
	assert.Equal(t, "7", admin.Subject())

	staff := New(8, "desk@armhub.uz", "STAFF")
	assert.False(t, staff.Admin)
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, Anonymous, FromContext(context.Background()))
	assert.Equal(t, "anon", FromContext(context.Background()).Subject())

	c := New(1, "a@b.uz", "ADMIN")
	ctx := WithCapability(context.Background(), c)
	assert.Equal(t, c, FromContext(ctx))
}
