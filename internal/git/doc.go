// Package git wraps the git CLI calls zag needs. Commands go through the
// Runner interface so callers can substitute a stub in tests; CLI is the
// real implementation that shells out to the git binary.
package git
