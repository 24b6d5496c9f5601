package buf

import "testing"

func TestU16LE(t *testing.T) {
	data := []byte{0x0d, 0x00, 0x01, 0x00}

	if got := U16LE(data); got != 0x000d {
		t.Fatalf("U16LE = 0x%x, want 0xd", got)
	}
	if got := U16LE(data[2:]); got != 1 {
		t.Fatalf("U16LE = 0x%x, want 0x1", got)
	}
	if U16LE([]byte{0xAA}) != 0 {
		t.Fatalf("U16LE short should be 0")
	}
}
