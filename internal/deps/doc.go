// Package deps implements the operations that change a project's
// dependency list: deriving a dependency's name from its repository URL,
// and adding or removing records through the manifest store.
package deps
