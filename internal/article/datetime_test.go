package article

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2024-05-01T10:30:00", want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{in: "2024-05-01T10:30:00.250", want: time.Date(2024, 5, 1, 10, 30, 0, 250_000_000, time.UTC)},
		{in: "2024-05-01T10:30", want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{in: "2024-05-01T12:30:00+02:00", want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{in: "2024-05-01T10:30:00Z", want: time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{in: "2024-05-01", wantErr: true},
		{in: "yesterday", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateTime(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDateTime(%q) = %v, want error", tt.in, got)
				}

				return
			}
			if err != nil {
				t.Fatalf("ParseDateTime(%q) error = %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("ParseDateTime(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
