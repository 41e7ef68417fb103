// Package contract turns ABI method calls on a deployed application into
// operation descriptors for package compose, and decodes the fixed-width
// values those methods return.
package contract
