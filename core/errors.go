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

import "errors"

// Domain validation errors
var (
	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrInvalidMatchRequest indicates a MatchRequest failed validation.
	// This is the only error class surfaced to callers as a request
	// failure; backend and per-item failures degrade locally.
	ErrInvalidMatchRequest = errors.New("invalid match request")

	// ErrEmptyName indicates the profile Name field is empty.
	// Profiles without a name are never matchable.
	ErrEmptyName = errors.New("profile name cannot be empty")

	// ErrEmptyQuery indicates the request query text is empty.
	ErrEmptyQuery = errors.New("query text cannot be empty")

	// ErrEmptyCorpus indicates the request carries no profiles.
	ErrEmptyCorpus = errors.New("profile corpus cannot be empty")

	// ErrInvalidThreshold indicates a threshold outside [-1, 1].
	ErrInvalidThreshold = errors.New("threshold must be within [-1, 1]")

	// ErrInvalidMaxResults indicates a non-positive result cap.
	ErrInvalidMaxResults = errors.New("max results must be positive")

	// ErrNegativeLength indicates corrupted serialized data.
	ErrNegativeLength = errors.New("negative slice length")
)
