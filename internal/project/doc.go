// Package project resolves the paths zag works on: the target project
// root and the manifest file inside it.
package project
