// Package testutil builds git repositories and zag project fixtures for tests.
package testutil
