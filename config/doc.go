// Package config resolves ticketbranch settings from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags
//  2. Environment variables (TICKETBRANCH_BASE_URL, TICKETBRANCH_API_TOKEN, ...)
//  3. Local config: .ticketbranch.yaml in the git root
//  4. Global config: ~/.config/ticketbranch/config.yaml
//  5. Built-in defaults
//
// Credentials (email, api_token, username, password, access_token) are
// ignored in the local file, which is usually committed with the repository.
//
// # Usage
//
//	resolver := config.NewResolver(config.NewResolverConfig(repoDir))
//	resolved := resolver.ResolveWithFlags(map[string]string{
//	    config.KeyOnExists: onExistsFlag,
//	})
//	settings, err := config.Load(resolved)
//
//	client, err := jira.NewClient(settings.Jira())
//	namer := branchname.NewNamer(settings.Naming())
//
// Each resolved value remembers its Source ("default", "global", "local",
// "env", "flag"), which `ticketbranch config list` prints.
package config
