package mood

// Mood is the singleton aggregate: one hex color token and one short
// description summarizing the vibe of recent casts.
type Mood struct {
	Color       string
	Description string
}
