//go:build !linux

package platform

// Connect reports ErrUnsupported; only X11 on Linux is implemented.
func Connect(display string) (Backend, error) {
	return nil, ErrUnsupported
}
