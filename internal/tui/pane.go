package tui

// PaneID identifies which pane is focused.
type PaneID int

const (
	PaneGroups PaneID = iota
	PaneLines
	paneCount // sentinel for wrapping
)

func (p PaneID) Next() PaneID {
	return (p + 1) % paneCount
}

func (p PaneID) Prev() PaneID {
	return (p - 1 + paneCount) % paneCount
}

func (p PaneID) String() string {
	switch p {
	case PaneGroups:
		return "Groups"
	case PaneLines:
		return "Diagnostics"
	default:
		return "?"
	}
}
