// Package lock provides an exclusive advisory lock between processes,
// backed by flock(2) on Unix and LockFileEx on Windows. The manifest store
// holds one across its load-mutate-persist cycle so concurrent zag
// invocations on the same project serialize instead of losing writes.
package lock
