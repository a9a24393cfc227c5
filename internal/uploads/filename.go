package uploads

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllowedExtensions lists the accepted cover image extensions, lowercase and without the dot.
var AllowedExtensions = []string{"png", "jpg", "jpeg"}

const fallbackExtension = "jpg"

// Extension returns the lowercased suffix after the last dot of filename,
// or "" if there is none. The name is taken as sent, path separators included.
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// IsAllowedExtension is true iff filename has a dot and its lowercased suffix is allowed.
func IsAllowedExtension(filename string) bool {
	if !strings.Contains(filename, ".") {
		return false
	}
	ext := Extension(filename)
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

var generatedName = regexp.MustCompile(`^book_[0-9a-f]{8}_\d{8}_\d{6}_\d{6}\.(png|jpg|jpeg)$`)

// IsGeneratedName reports whether name was produced by GenerateUniqueFilename,
// i.e. the file was uploaded through the app and is safe to delete.
func IsGeneratedName(name string) bool {
	return generatedName.MatchString(name)
}

// GenerateUniqueFilename returns book_<token>_<YYYYMMDD_HHMMSS_micro>.<ext>.
// The extension of originalFilename is kept when allowed, otherwise jpg is used.
func GenerateUniqueFilename(originalFilename string) string {
	return generateFilename(originalFilename, time.Now())
}

func generateFilename(originalFilename string, now time.Time) string {
	ext := fallbackExtension
	if IsAllowedExtension(originalFilename) {
		ext = Extension(originalFilename)
	}
	token := uuid.New().String()[:8]
	timestamp := fmt.Sprintf("%s_%06d", now.Format("20060102_150405"), now.Nanosecond()/1000)
	return fmt.Sprintf("book_%s_%s.%s", token, timestamp, ext)
}
