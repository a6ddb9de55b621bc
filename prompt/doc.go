// Package prompt asks the user for a ticket reference and yes/no answers
// on the terminal.
//
// Example usage:
//
//	p := prompt.New(os.Stdin, os.Stderr)
//	if p.Interactive() {
//	    key, err := p.Ticket(branchname.ValidateTicketReference)
//	}
package prompt
