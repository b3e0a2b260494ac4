package room

// Conn is the outbound half of a client connection. The websocket
// transport implements it; tests substitute fakes. Send is
// fire-and-forget from the room's point of view: a failed or slow
// write is the transport's problem.
type Conn interface {
	ID() string
	Send(payload []byte) error
	Close() error
}
