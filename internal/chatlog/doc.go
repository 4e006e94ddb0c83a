// Package chatlog extracts messages from exported chat logs.
//
// Each physical line of the form
//
//	[DD/MM/YYYY, HH:MM:SS] Sender: Body
//
// becomes an Entry. Lines that do not follow that grammar, including the
// continuation lines of multi-line messages, are dropped without error.
package chatlog
