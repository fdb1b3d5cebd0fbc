// Package ui holds the plain-terminal output helpers shared by zag commands.
package ui
