//go:build !screen

package display

// FramebufferSupported returns whether framebuffer support is compiled in.
func FramebufferSupported() bool {
	return false
}

func newFramebuffer(cfg Config) (Display, error) {
	return nil, errScreenNotCompiled
}
