package tui

// GroupFocusedMsg is sent when the cursor moves to another group.
type GroupFocusedMsg struct {
	Index int
}
