package domain

// WordFilter narrows word listings. Zero values mean "no filter".
type WordFilter struct {
	Category      string
	MasteryStatus MasteryStatus
	// Search matches original text or translation, case-insensitive substring.
	Search string
	Limit  int
	Offset int
}

// WordStats is the aggregate view of a user's collection.
type WordStats struct {
	TotalWords     int
	MasteredCount  int
	LearningCount  int
	// NewAvailable counts words never reviewed.
	NewAvailable int
	// ReviewDue counts reviewed words whose next review date has passed.
	ReviewDue int
	// DueToday is min(NewAvailable, daily new cap) + ReviewDue. The cap keeps
	// bulk imports from producing a wall of hundreds of "due" words.
	DueToday int
	// NeedsAttention counts words with three or more lapses.
	NeedsAttention int
}
