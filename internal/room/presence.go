package room

// Presence binds transient connection ids to stable player ids and
// back. A player who reconnects is rebound last-writer-wins; the old
// connection keeps receiving broadcasts until its socket dies.
type Presence struct {
	connToPlayer map[string]string
	playerToConn map[string]string
}

func NewPresence() *Presence {
	return &Presence{
		connToPlayer: make(map[string]string),
		playerToConn: make(map[string]string),
	}
}

// Bind - binds a connection to a player identity, displacing any
// previous connection bound to that identity.
func (that *Presence) Bind(connID, playerID string) {
	if oldConn, ok := that.playerToConn[playerID]; ok && oldConn != connID {
		delete(that.connToPlayer, oldConn)
	}

	that.connToPlayer[connID] = playerID
	that.playerToConn[playerID] = connID
}

// DropConn - clears the binding for a closing connection and reports
// which player it freed. A stale close that arrives after a faster
// reconnect has rebound the player is a no-op: the player is only
// freed when the closing connection is still the bound one.
func (that *Presence) DropConn(connID string) (string, bool) {
	playerID, ok := that.connToPlayer[connID]
	if !ok {
		return "", false
	}

	delete(that.connToPlayer, connID)

	if that.playerToConn[playerID] != connID {
		return "", false
	}

	delete(that.playerToConn, playerID)

	return playerID, true
}

func (that *Presence) PlayerOf(connID string) (string, bool) {
	playerID, ok := that.connToPlayer[connID]
	return playerID, ok
}

func (that *Presence) ConnOf(playerID string) (string, bool) {
	connID, ok := that.playerToConn[playerID]
	return connID, ok
}
