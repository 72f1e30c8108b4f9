//go:build gldebug

package debug

// BuildEnabled forces GL call checking on in gldebug builds.
const BuildEnabled = true
