// Package branchname derives canonical branch names from ticket metadata.
//
// A branch name has four segments:
//
//	<fiscal-year>/<sprint-segment>/<TICKET-KEY>/<summary-slug>
//
// The fiscal year and sprint number are pulled out of the free-form sprint
// label the tracker reports ("WAR 2025 - Q2 Sprint 7" -> fy25, 07). When the
// label is missing or does not contain them, the configured Prefix supplies
// the values. Everything in this package is pure: no I/O, no ambient
// configuration, and every function is total.
//
// Example:
//
//	namer := branchname.NewNamer(branchname.Config{
//		Prefix:      branchname.ParsePrefix("fy25/00"),
//		Placeholder: branchname.DefaultPlaceholder,
//	})
//	name := namer.ForTicket("WAR-7974", "Fix login bug", "WAR 2025 - Q2 Sprint 7")
//	// fy25/sprint07/WAR-7974/fix-login-bug
package branchname
