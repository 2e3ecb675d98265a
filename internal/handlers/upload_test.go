package handlers

import (
	"mime/multipart"
	"strings"
	"testing"
)

func TestUploadFilenameKeepsExtension(t *testing.T) {
	name, err := uploadFilename("ring-photo.JPG")
	if err != nil {
		t.Fatalf("uploadFilename returned error: %v", err)
	}
	if !strings.HasSuffix(name, ".jpg") {
		t.Fatalf("expected lowercased .jpg suffix, got %q", name)
	}
	if name == "ring-photo.jpg" {
		t.Fatal("expected the original base name to be replaced")
	}
}

func TestUploadFilenameRejectsMissingExtension(t *testing.T) {
	if _, err := uploadFilename("photo"); err == nil {
		t.Fatal("expected error for a filename without extension")
	}
}

func TestUploadFilenamesAreUnique(t *testing.T) {
	first, err := uploadFilename("a.png")
	if err != nil {
		t.Fatalf("uploadFilename returned error: %v", err)
	}
	second, err := uploadFilename("a.png")
	if err != nil {
		t.Fatalf("uploadFilename returned error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct generated names, got %q twice", first)
	}
}

func TestValidatePhotoHeaderRejectsUnsupportedType(t *testing.T) {
	err := validatePhotoHeader(&multipart.FileHeader{Filename: "cat.gif", Size: 100})
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}

func TestValidatePhotoHeaderRejectsOversizedFile(t *testing.T) {
	err := validatePhotoHeader(&multipart.FileHeader{Filename: "big.png", Size: maxPhotoSize + 1})
	if err == nil {
		t.Fatal("expected error for oversized file")
	}
}

func TestValidatePhotoHeaderAcceptsAllowedTypes(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.jpeg", "c.png", "d.webp"} {
		if err := validatePhotoHeader(&multipart.FileHeader{Filename: name, Size: 1024}); err != nil {
			t.Fatalf("expected %q to be accepted, got %v", name, err)
		}
	}
}

func TestDeleteUploadedPhotoRefusesOutsidePaths(t *testing.T) {
	for _, path := range []string{
		"../etc/passwd",
		"uploads/../main.go",
		"/etc/hosts",
		"internal/config/config.go",
	} {
		if err := deleteUploadedPhoto(path); err == nil {
			t.Fatalf("expected refusal for path %q", path)
		}
	}
}

func TestDeleteUploadedPhotoIgnoresEmptyPath(t *testing.T) {
	if err := deleteUploadedPhoto("   "); err != nil {
		t.Fatalf("expected nil for empty path, got %v", err)
	}
}

func TestDeleteUploadedPhotoMissingFileIsNotAnError(t *testing.T) {
	if err := deleteUploadedPhoto("uploads/does-not-exist.png"); err != nil {
		t.Fatalf("expected nil for missing file, got %v", err)
	}
}
