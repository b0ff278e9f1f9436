package game

const killFeedSize = 60

// KillFeedEntry is a single line in the kill feed.
type KillFeedEntry struct {
	Tick    int
	Team    TeamID // winner's team
	Message string
}

// KillFeed is a ring buffer of recent kill announcements for on-screen
// display.
type KillFeed struct {
	entries []KillFeedEntry
	head    int
	count   int
}

// NewKillFeed creates a kill feed with a fixed capacity.
func NewKillFeed() *KillFeed {
	return &KillFeed{
		entries: make([]KillFeedEntry, killFeedSize),
	}
}

// Add appends an entry, overwriting the oldest once full.
func (kf *KillFeed) Add(tick int, team TeamID, msg string) {
	kf.entries[kf.head] = KillFeedEntry{
		Tick:    tick,
		Team:    team,
		Message: msg,
	}
	kf.head = (kf.head + 1) % killFeedSize
	if kf.count < killFeedSize {
		kf.count++
	}
}

// Len returns the number of stored entries.
func (kf *KillFeed) Len() int { return kf.count }

// Recent returns entries in chronological order (oldest first).
func (kf *KillFeed) Recent() []KillFeedEntry {
	result := make([]KillFeedEntry, kf.count)
	for i := 0; i < kf.count; i++ {
		idx := (kf.head - kf.count + i + killFeedSize) % killFeedSize
		result[i] = kf.entries[idx]
	}
	return result
}
