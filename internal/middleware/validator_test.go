package middleware

import "testing"

func TestValidateVideoFormat(t *testing.T) {
	tests := []struct {
		fileName string
		wantErr  bool
	}{
		{"clip.mp4", false},
		{"clip.MOV", false},
		{"clip.webm", false},
		{"clip.mkv", false},
		{"clip.avi", false},
		{"clip.gif", true},
		{"clip.mp3", true},
		{"clip", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateVideoFormat(tt.fileName)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateVideoFormat(%q) err = %v, wantErr %v", tt.fileName, err, tt.wantErr)
		}
	}
}

func TestValidateFileSize(t *testing.T) {
	max := int64(100 << 20)
	if err := ValidateFileSize(1024, max); err != nil {
		t.Errorf("small file rejected: %v", err)
	}
	if err := ValidateFileSize(max, max); err != nil {
		t.Errorf("file at the limit rejected: %v", err)
	}
	if err := ValidateFileSize(max+1, max); err == nil {
		t.Error("oversized file accepted")
	}
	if err := ValidateFileSize(0, max); err == nil {
		t.Error("empty file accepted")
	}
}

func TestValidateFileName(t *testing.T) {
	tests := []struct {
		fileName string
		wantErr  bool
	}{
		{"video.mp4", false},
		{"my review (final).mp4", false},
		{"", true},
		{"../etc/passwd", true},
		{"a/b.mp4", true},
		{"a\\b.mp4", true},
		{"x$(rm).mp4", true},
		{"x`id`.mp4", true},
		{"a;b.mp4", true},
	}
	for _, tt := range tests {
		err := ValidateFileName(tt.fileName)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFileName(%q) err = %v, wantErr %v", tt.fileName, err, tt.wantErr)
		}
	}
}

func TestValidateTenantID(t *testing.T) {
	tests := []struct {
		tenant  string
		wantErr bool
	}{
		{"acme", false},
		{"acme-prod_2", false},
		{"", true},
		{"bad tenant", true},
		{"tenant/evil", true},
		{string(make([]byte, 65)), true},
	}
	for _, tt := range tests {
		err := ValidateTenantID(tt.tenant)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateTenantID(%q) err = %v, wantErr %v", tt.tenant, err, tt.wantErr)
		}
	}
}

func TestValidateReportID(t *testing.T) {
	if err := ValidateReportID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); err != nil {
		t.Errorf("valid UUID rejected: %v", err)
	}
	for _, bad := range []string{"", "not-a-uuid", "6ba7b810-9dad-11d1-80b4", "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"} {
		if err := ValidateReportID(bad); err == nil {
			t.Errorf("ValidateReportID(%q) accepted", bad)
		}
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00 world \x07 "); got != "hello world" {
		t.Errorf("SanitizeString = %q", got)
	}
	if got := SanitizeString("line1\nline2"); got != "line1\nline2" {
		t.Errorf("newlines should survive, got %q", got)
	}
}

func TestValidateLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 20},
		{-5, 20},
		{50, 50},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		if got := ValidateLimit(tt.in); got != tt.want {
			t.Errorf("ValidateLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidateDays(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, 7},
		{30, 30},
		{365, 365},
		{1000, 365},
	}
	for _, tt := range tests {
		if got := ValidateDays(tt.in); got != tt.want {
			t.Errorf("ValidateDays(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
