package chatlog

// Entry is one parsed chat message.
type Entry struct {
	// Timestamp is the bracketed "DD/MM/YYYY, HH:MM:SS" prefix, verbatim.
	Timestamp string `json:"timestamp"`
	// Sender is the name before the first colon, untrimmed.
	Sender string `json:"username"`
	// Body is everything after "Sender: ".
	Body string `json:"message"`
}

// From reports whether the entry was sent by name. Surrounding whitespace of
// the sender is ignored; the comparison is case sensitive.
func (e Entry) From(name string) bool {
	return trimSpace(e.Sender) == name
}
