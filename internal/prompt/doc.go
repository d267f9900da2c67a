// Package prompt asks the questions a scaffold run needs. The Huh prompter
// drives a terminal form; the Line prompter reads answers one line at a time
// for pipes and scripts. Both report cancellation as ErrCancelled.
package prompt
