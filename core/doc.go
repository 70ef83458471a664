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


// Package core defines the domain model for scholarmatch: candidate
// profiles as produced by the external collector, analyzed queries,
// matches, and the validation rules applied at request boundaries.
//
// Profiles are consumed read-only. The only hard requirement on a
// profile is a non-empty name; everything else may be missing and the
// matching pipeline degrades accordingly rather than rejecting records.
package core
