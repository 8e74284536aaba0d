package service

import (
	"testing"

	"staffpulse/pkg/errors"
)

func TestParseMoodResponse(t *testing.T) {
	tests := []struct {
		in          string
		wantScore   int16
		wantComment string
		wantErr     bool
	}{
		{in: "4", wantScore: 4},
		{in: "  3  ", wantScore: 3},
		{in: "5 great sprint", wantScore: 5, wantComment: "great sprint"},
		{in: "1 rough   week honestly", wantScore: 1, wantComment: "rough week honestly"},
		{in: "0", wantErr: true},
		{in: "6", wantErr: true},
		{in: "great", wantErr: true},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		score, comment, err := ParseMoodResponse(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errors.CheckinMoodInvalid) {
				t.Errorf("ParseMoodResponse(%q): expected CheckinMoodInvalid, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMoodResponse(%q): unexpected error %v", tt.in, err)
			continue
		}
		if score != tt.wantScore || comment != tt.wantComment {
			t.Errorf("ParseMoodResponse(%q) = (%d, %q), want (%d, %q)",
				tt.in, score, comment, tt.wantScore, tt.wantComment)
		}
	}
}
