package note

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewThread(t *testing.T) {
	t.Run("normalizes member order", func(t *testing.T) {
		th, err := NewThread("user-z", "user-a")
		require.NoError(t, err)
		assert.Equal(t, "user-a", th.UserAID)
		assert.Equal(t, "user-z", th.UserBID)

		// Same pair, either order, yields the same normalized pair.
		th2, err := NewThread("user-a", "user-z")
		require.NoError(t, err)
		assert.Equal(t, th.UserAID, th2.UserAID)
		assert.Equal(t, th.UserBID, th2.UserBID)
	})

	t.Run("self thread rejected", func(t *testing.T) {
		_, err := NewThread("user-a", "user-a")
		assert.ErrorIs(t, err, ErrSelfThread)
	})

	t.Run("both ids required", func(t *testing.T) {
		_, err := NewThread("user-a", "")
		assert.Error(t, err)
	})
}

func TestThreadMembership(t *testing.T) {
	th := Thread{UserAID: "user-a", UserBID: "user-b"}

	assert.True(t, th.Member("user-a"))
	assert.True(t, th.Member("user-b"))
	assert.False(t, th.Member("user-c"))
	assert.False(t, th.Member(""))

	assert.Equal(t, "user-b", th.OtherMember("user-a"))
	assert.Equal(t, "user-a", th.OtherMember("user-b"))
	assert.Equal(t, "", th.OtherMember("user-c"))
}

func TestNewNote(t *testing.T) {
	t.Run("trims body", func(t *testing.T) {
		n, err := NewNote(Note{ThreadID: "t1", SenderID: "user-a", Body: strPtr("  hello  ")})
		require.NoError(t, err)
		assert.Equal(t, "hello", *n.Body)
		assert.False(t, n.CreatedAt.IsZero())
	})

	t.Run("image only is fine", func(t *testing.T) {
		n, err := NewNote(Note{ThreadID: "t1", SenderID: "user-a", ImageURL: strPtr("https://img/x.png")})
		require.NoError(t, err)
		assert.Nil(t, n.Body)
	})

	t.Run("whitespace body with no image is empty", func(t *testing.T) {
		_, err := NewNote(Note{ThreadID: "t1", SenderID: "user-a", Body: strPtr("   ")})
		assert.ErrorIs(t, err, ErrEmptyNote)
	})

	t.Run("missing ids", func(t *testing.T) {
		_, err := NewNote(Note{SenderID: "user-a", Body: strPtr("hi")})
		assert.Error(t, err)
	})
}
