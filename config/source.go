package config

// Source records which layer supplied a resolved setting. Later layers win:
// default, global, local, env, flag.
type Source string

const (
	SourceDefault Source = "default"
	// SourceGlobal is ~/.config/ticketbranch/config.yaml.
	SourceGlobal Source = "global"
	// SourceLocal is .ticketbranch.yaml at the repository root.
	SourceLocal Source = "local"
	// SourceEnv is a TICKETBRANCH_* variable (or NO_COLOR).
	SourceEnv  Source = "env"
	SourceFlag Source = "flag"
)

// String returns the source label, or "unset" when no layer set the key.
func (s Source) String() string {
	if s == "" {
		return "unset"
	}
	return string(s)
}
