// Package ticketbranch creates a git branch named after a Jira ticket.
//
// A branch name is derived from the ticket's key, summary, and sprint:
//
//	<fiscal-year>/<sprint-segment>/<TICKET-KEY>/<summary-slug>
//	fy25/sprint07/WAR-7974/fix-login-bug
//
// The subpackages hold the parts:
//
//   - branchname: ticket validation, slugs, sprint extraction, composition
//   - jira: ticket retrieval over the Jira REST API
//   - git: branch queries and checkout in a local repository
//   - config: layered configuration (flags, env, local, global, defaults)
//   - notify: progress events for terminals and logs
//   - prompt: interactive ticket and confirmation input
//   - errors: user-facing messages with remediation hints
//
// # Quick Start
//
//	client, _ := jira.NewClient(settings.Jira())
//	repo, _ := git.NewContext(".")
//
//	svc := ticketbranch.NewService(client, settings.Naming())
//	result, err := svc.Create(ctx, "WAR-7974", repo, ticketbranch.CreateOptions{
//	    OnExists: ticketbranch.OnExistsReuse,
//	})
//	fmt.Println(result.Branch)
package ticketbranch
