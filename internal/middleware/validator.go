package middleware

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

// allowedVideoExtensions are the upload formats the analyzer accepts.
var allowedVideoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".avi":  true,
	".webm": true,
	".mkv":  true,
}

// ValidateVideoFormat checks the upload file extension
func ValidateVideoFormat(fileName string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedVideoExtensions[ext] {
		return fmt.Errorf("unsupported video format: %s (allowed: mp4, mov, avi, webm, mkv)", ext)
	}
	return nil
}

// ValidateFileSize checks the upload size against the configured maximum
func ValidateFileSize(size, maxBytes int64) error {
	if size <= 0 {
		return fmt.Errorf("empty upload")
	}
	if size > maxBytes {
		return fmt.Errorf("file too large: %d bytes (max %d)", size, maxBytes)
	}
	return nil
}

// ValidateFileName blocks traversal and shell metacharacters in upload names
func ValidateFileName(fileName string) error {
	if fileName == "" {
		return fmt.Errorf("file name cannot be empty")
	}
	if strings.Contains(fileName, "..") || strings.ContainsAny(fileName, "/\\") {
		return fmt.Errorf("invalid file name")
	}
	dangerous := []string{"$(", "`", "&", "|", ";", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(fileName, d) {
			return fmt.Errorf("invalid characters in file name")
		}
	}
	return nil
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, tenant)
	if !matched {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidateReportID validates report ID format (UUID)
func ValidateReportID(reportID string) error {
	if reportID == "" {
		return fmt.Errorf("report ID cannot be empty")
	}

	pattern := `^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`
	matched, _ := regexp.MatchString(pattern, reportID)
	if !matched {
		return fmt.Errorf("invalid report ID format")
	}

	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}
