package room

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresence_Bind(t *testing.T) {
	t.Run("Binds a connection to a player", func(t *testing.T) {
		// Given: an empty presence map
		presence := NewPresence()

		// When: a connection claims an identity
		presence.Bind("conn-1", "player-a")

		// Then: both directions resolve
		playerID, ok := presence.PlayerOf("conn-1")
		require.True(t, ok)
		assert.Equal(t, "player-a", playerID)

		connID, ok := presence.ConnOf("player-a")
		require.True(t, ok)
		assert.Equal(t, "conn-1", connID)
	})

	t.Run("Reconnect rebinds last-writer-wins", func(t *testing.T) {
		// Given: a player bound to an old connection
		presence := NewPresence()
		presence.Bind("conn-1", "player-a")

		// When: the player reconnects on a new connection
		presence.Bind("conn-2", "player-a")

		// Then: the new connection owns the identity
		connID, ok := presence.ConnOf("player-a")
		require.True(t, ok)
		assert.Equal(t, "conn-2", connID)

		// Then: the old connection no longer resolves
		_, ok = presence.PlayerOf("conn-1")
		assert.False(t, ok)
	})
}

func TestPresence_DropConn(t *testing.T) {
	t.Run("Dropping the bound connection frees the player", func(t *testing.T) {
		// Given: a bound connection
		presence := NewPresence()
		presence.Bind("conn-1", "player-a")

		// When: that connection closes
		playerID, ok := presence.DropConn("conn-1")

		// Then: the player is freed
		require.True(t, ok)
		assert.Equal(t, "player-a", playerID)

		_, ok = presence.ConnOf("player-a")
		assert.False(t, ok)
	})

	t.Run("Unknown connection is a no-op", func(t *testing.T) {
		presence := NewPresence()

		_, ok := presence.DropConn("conn-404")

		assert.False(t, ok)
	})

	t.Run("Stale close after a reconnect does not free the player", func(t *testing.T) {
		// Given: a player who reconnected before the old close arrived
		presence := NewPresence()
		presence.Bind("conn-1", "player-a")
		presence.Bind("conn-2", "player-a")

		// When: the stale close for the old connection is delivered
		_, ok := presence.DropConn("conn-1")

		// Then: the player stays bound to the new connection
		assert.False(t, ok)

		connID, ok := presence.ConnOf("player-a")
		require.True(t, ok)
		assert.Equal(t, "conn-2", connID)
	})
}
