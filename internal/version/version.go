// Package version provides build information for adnow.
package version

// Version is the version of adnow. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent identifies adnow to remote catalog hosts.
func UserAgent() string {
	return "adnow/" + String()
}
