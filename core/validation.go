// Copyright 2025 Candela Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateProfile validates a Profile according to domain rules.
//
// Validation rules:
//   - Name must not be empty or whitespace-only
//
// NOT validated (upstream collector output is trusted as-is):
//   - Every other field may be empty
//   - ID (0 is valid before the store assigns a sequence ID)
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if strings.TrimSpace(profile.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrEmptyName)
	}

	return nil
}

// ValidateMatchRequest validates a MatchRequest at the request boundary.
//
// Validation rules:
//   - RawText must not be empty or whitespace-only
//   - Profiles must not be empty
//   - Threshold must be within the cosine range [-1, 1]
//   - MaxResults must be positive
//
// A request failing here is rejected before any processing starts.
func ValidateMatchRequest(req *MatchRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidMatchRequest)
	}

	if strings.TrimSpace(req.RawText) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMatchRequest, ErrEmptyQuery)
	}

	if len(req.Profiles) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidMatchRequest, ErrEmptyCorpus)
	}

	if req.Threshold < -1 || req.Threshold > 1 {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidMatchRequest, ErrInvalidThreshold, req.Threshold)
	}

	if req.MaxResults <= 0 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalidMatchRequest, ErrInvalidMaxResults, req.MaxResults)
	}

	return nil
}

// IsValidationError reports whether err originates from profile or
// request validation, as opposed to a processing failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidProfile) || errors.Is(err, ErrInvalidMatchRequest)
}
