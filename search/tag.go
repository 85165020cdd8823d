package search

// Tag labels a paint event for the renderer. The renderer maps tags to
// colors; the engine only speaks in tags.
type Tag uint8

const (
	TagVisited Tag = iota
	TagFrontier
	TagPath
	TagStart
	TagGoal
	TagPortalUp
	TagPortalDown
)

func (t Tag) String() string {
	switch t {
	case TagVisited:
		return "visited"
	case TagFrontier:
		return "frontier"
	case TagPath:
		return "path"
	case TagStart:
		return "start"
	case TagGoal:
		return "goal"
	case TagPortalUp:
		return "portal_up"
	case TagPortalDown:
		return "portal_down"
	default:
		return "unknown"
	}
}
