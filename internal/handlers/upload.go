package handlers

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const uploadRootDir = "uploads"

var allowedPhotoExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
}

const maxPhotoSize = 5 << 20

func validatePhotoHeader(file *multipart.FileHeader) error {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return fmt.Errorf("photo file extension is required")
	}
	if _, ok := allowedPhotoExtensions[extension]; !ok {
		return fmt.Errorf("unsupported photo type: %s", extension)
	}
	if file.Size > maxPhotoSize {
		return fmt.Errorf("photo file too large (max 5MB)")
	}
	return nil
}

// uploadFilename keeps the original extension but replaces the name with a
// random one.
func uploadFilename(original string) (string, error) {
	extension := strings.ToLower(filepath.Ext(original))
	if extension == "" {
		return "", fmt.Errorf("photo file extension is required")
	}
	return uuid.NewString() + extension, nil
}

func savePhoto(file *multipart.FileHeader) (string, error) {
	if err := validatePhotoHeader(file); err != nil {
		return "", err
	}

	filename, err := uploadFilename(file.Filename)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(uploadRootDir, 0o755); err != nil {
		log.Printf("[UPLOAD] savePhoto: failed to create directory %s: %v", uploadRootDir, err)
		return "", err
	}

	fullPath := filepath.Join(uploadRootDir, filename)

	out, err := os.Create(fullPath)
	if err != nil {
		log.Printf("[UPLOAD] savePhoto: failed to create file %s: %v", fullPath, err)
		return "", err
	}
	defer out.Close()

	in, err := file.Open()
	if err != nil {
		log.Printf("[UPLOAD] savePhoto: failed to open upload %s: %v", file.Filename, err)
		return "", err
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		log.Printf("[UPLOAD] savePhoto: failed to save file %s: %v", fullPath, err)
		return "", err
	}

	return filepath.ToSlash(fullPath), nil
}

// deleteUploadedPhoto removes a previously saved photo. Paths outside the
// uploads directory are refused.
func deleteUploadedPhoto(relPath string) error {
	trimmed := strings.TrimSpace(relPath)
	if trimmed == "" {
		return nil
	}

	cleanRel := path.Clean("/" + strings.TrimPrefix(trimmed, "/"))
	cleanRel = strings.TrimPrefix(cleanRel, "/")
	if !strings.HasPrefix(cleanRel, uploadRootDir+"/") {
		return fmt.Errorf("refusing to delete non-upload path: %s", relPath)
	}

	if err := os.Remove(filepath.FromSlash(cleanRel)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}
