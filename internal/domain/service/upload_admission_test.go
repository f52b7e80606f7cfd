package service

import (
	"bytes"
	"errors"
	"testing"
)

var (
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	pngHeader  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
)

func fakeImage(header []byte, size int) []byte {
	buf := make([]byte, size)
	copy(buf, header)
	return buf
}

func admissionReason(t *testing.T, err error) string {
	t.Helper()
	var admErr *AdmissionError
	if !errors.As(err, &admErr) {
		t.Fatalf("expected *AdmissionError, got %T (%v)", err, err)
	}
	return admErr.Reason
}

func TestValidateUpload_Rules(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		mimeType string
		reason   string
	}{
		{"jpeg within limit", 2 * 1024 * 1024, "image/jpeg", ""},
		{"exactly 5MiB", MaxUploadSize, "image/png", ""},
		{"bare webp", 100, "webp", ""},
		{"image/jpg alias", 100, "image/jpg", ""},
		{"one byte over", MaxUploadSize + 1, "image/png", ReasonFileTooLarge},
		{"gif", 100, "image/gif", ReasonInvalidFileType},
		{"empty type", 100, "", ReasonInvalidFileType},
		{"size checked first", 6 * 1024 * 1024, "application/pdf", ReasonFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUpload(tt.size, tt.mimeType)

			if tt.reason == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if got := admissionReason(t, err); got != tt.reason {
				t.Errorf("got reason %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestValidateContent_ReturnsDetectedType(t *testing.T) {
	mt, err := ValidateContent(fakeImage(pngHeader, 1024), "image/png")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mt.Value() != "image/png" {
		t.Errorf("got %q, want image/png", mt.Value())
	}
}

func TestValidateContent_MislabelledImage_UsesRealType(t *testing.T) {
	mt, err := ValidateContent(fakeImage(jpegHeader, 1024), "image/png")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mt.CanonicalExt() != "jpg" {
		t.Errorf("got ext %q, want jpg", mt.CanonicalExt())
	}
}

func TestValidateContent_NonImageBytes_Rejected(t *testing.T) {
	data := bytes.Repeat([]byte("not an image "), 50)

	_, err := ValidateContent(data, "image/jpeg")

	if got := admissionReason(t, err); got != ReasonInvalidFileType {
		t.Errorf("got reason %q, want %q", got, ReasonInvalidFileType)
	}
}

func TestValidateContent_Oversized_Rejected(t *testing.T) {
	_, err := ValidateContent(fakeImage(jpegHeader, int(MaxUploadSize)+1), "image/jpeg")

	if got := admissionReason(t, err); got != ReasonFileTooLarge {
		t.Errorf("got reason %q, want %q", got, ReasonFileTooLarge)
	}
}
