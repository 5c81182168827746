package logsink

import "testing"

func TestParseCodec(t *testing.T) {
	tests := []struct {
		in      string
		want    Codec
		wantErr bool
	}{
		{"gzip", CodecGzip, false},
		{"xz", CodecXZ, false},
		{"", 0, true},
		{"zip", 0, true},
		{"GZIP", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseCodec(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCodec(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCodec(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCodec(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestCodec_StringAndExt(t *testing.T) {
	if got := CodecGzip.String(); got != "gzip" {
		t.Errorf("CodecGzip.String() = %q", got)
	}
	if got := CodecXZ.String(); got != "xz" {
		t.Errorf("CodecXZ.String() = %q", got)
	}
	if got := CodecGzip.Ext(); got != ".gz" {
		t.Errorf("CodecGzip.Ext() = %q", got)
	}
	if got := CodecXZ.Ext(); got != ".xz" {
		t.Errorf("CodecXZ.Ext() = %q", got)
	}
}
