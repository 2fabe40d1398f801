package window

import "testing"

type plainHost struct{}

func (plainHost) Size() (int, int) { return 1, 1 }

func TestGLFWRejectsForeignHosts(t *testing.T) {
	if _, err := GLFW(plainHost{}); err != ErrNoNativeWindow {
		t.Fatalf("expected ErrNoNativeWindow; got %v", err)
	}

	if _, err := GLFW(&Window{}); err != ErrNoNativeWindow {
		t.Fatalf("expected ErrNoNativeWindow for a closed window; got %v", err)
	}
}
