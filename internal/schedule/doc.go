// Package schedule allocates the fixed daily posting budget between
// relisting and new-listing work.
package schedule
