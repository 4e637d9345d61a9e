package tui

// startMsg asks the display to start a process, as if the action control
// had been activated.
type startMsg struct{}

// streamMessageMsg carries one raw payload from a session's stream.
type streamMessageMsg struct {
	sessionID string
	data      []byte
}

// transportErrorMsg carries a connection-level failure from a session.
type transportErrorMsg struct {
	sessionID string
	err       error
}
