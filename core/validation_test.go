package core

import (
	"errors"
	"testing"
)

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		wantErr error
	}{
		{
			name:    "valid profile",
			profile: &Profile{Name: "Alice Chen"},
			wantErr: nil,
		},
		{
			name: "valid profile with only a name",
			profile: &Profile{
				Name: "Bob",
			},
			wantErr: nil,
		},
		{
			name:    "empty name",
			profile: &Profile{Title: "Professor"},
			wantErr: ErrEmptyName,
		},
		{
			name:    "whitespace name",
			profile: &Profile{Name: "   "},
			wantErr: ErrEmptyName,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfile() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateMatchRequest(t *testing.T) {
	validProfiles := []*Profile{{Name: "Alice"}}

	tests := []struct {
		name    string
		req     *MatchRequest
		wantErr error
	}{
		{
			name: "valid request",
			req: &MatchRequest{
				RawText:    "machine learning",
				Profiles:   validProfiles,
				Threshold:  DefaultThreshold,
				MaxResults: DefaultMaxResults,
			},
			wantErr: nil,
		},
		{
			name: "zero threshold is valid",
			req: &MatchRequest{
				RawText:    "robotics",
				Profiles:   validProfiles,
				Threshold:  0,
				MaxResults: 10,
			},
			wantErr: nil,
		},
		{
			name: "empty query",
			req: &MatchRequest{
				RawText:    "  ",
				Profiles:   validProfiles,
				Threshold:  0.5,
				MaxResults: 10,
			},
			wantErr: ErrEmptyQuery,
		},
		{
			name: "empty corpus",
			req: &MatchRequest{
				RawText:    "robotics",
				Threshold:  0.5,
				MaxResults: 10,
			},
			wantErr: ErrEmptyCorpus,
		},
		{
			name: "threshold out of range",
			req: &MatchRequest{
				RawText:    "robotics",
				Profiles:   validProfiles,
				Threshold:  1.5,
				MaxResults: 10,
			},
			wantErr: ErrInvalidThreshold,
		},
		{
			name: "non-positive max results",
			req: &MatchRequest{
				RawText:    "robotics",
				Profiles:   validProfiles,
				Threshold:  0.5,
				MaxResults: 0,
			},
			wantErr: ErrInvalidMaxResults,
		},
		{
			name:    "nil request",
			req:     nil,
			wantErr: ErrInvalidMatchRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMatchRequest(tt.req)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateMatchRequest() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateMatchRequest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
