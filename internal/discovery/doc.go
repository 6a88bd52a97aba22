// Package discovery locates git repositories beneath root directories.
package discovery
