package domain

// Activity is an extracurricular offering with its current roster.
type Activity struct {
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}
