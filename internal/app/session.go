package app

// Session is the controller's mutable state. Every load overwrites it;
// the last write wins.
type Session struct {
	Username   string
	ProblemID  string
	Problems   []string
	DarkMode   bool
	Submitting bool
}
