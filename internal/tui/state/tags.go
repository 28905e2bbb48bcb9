package state

// TagKind enumerates the summary chips shown under the diff.
type TagKind int

const (
	// Stable ordering for display: Removed, Added, Unchanged, Matches, Bad Pattern
	REMOVED TagKind = iota
	ADDED
	UNCHANGED
	MATCHES
	BAD_PATTERN
)

// Tag represents a single status chip. Value carries the counter; tags
// without a counter use Value = 0.
type Tag struct {
	Kind  TagKind
	Value int
}
