//go:build !unix

package terminal

// inputReady never waits; a split escape sequence decodes as the keys read so far.
func (t *Terminal) inputReady() bool {
	return false
}
