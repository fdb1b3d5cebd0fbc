// Package fileutil holds the small file-writing primitives shared by the
// manifest store and the bootstrap steps.
package fileutil
