// Package bootstrap wires the zag tool into a project: it registers the tool
// repository as a git submodule, imports it from the build script, creates
// an empty manifest and keeps the manifest lock file out of version control.
package bootstrap
