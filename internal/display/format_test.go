package display

import (
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"small bytes", 512, "512 B"},
		{"exactly 1 KiB", 1024, "1.0 KiB"},
		{"1.5 KiB", 1536, "1.5 KiB"},
		{"1 MiB", 1024 * 1024, "1.0 MiB"},
		{"1 GiB", 1024 * 1024 * 1024, "1.0 GiB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestFormatMB(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{"half megabyte", 524288, "0.50 MB"},
		{"typical photo", 440401, "0.42 MB"},
		{"one megabyte", 1048576, "1.00 MB"},
		{"zero", 0, "0.00 MB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMB(tt.bytes)
			if got != tt.want {
				t.Errorf("FormatMB(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}
