// Copyright 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package token

import "testing"

func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		desc     string
		inName   string
		inKw     map[string]bool
		wantName string
	}{{
		desc:     "no hyphen, no collision",
		inName:   "myField",
		inKw:     map[string]bool{"class": true},
		wantName: "myField",
	}, {
		desc:     "internal hyphen becomes underscore",
		inName:   "my-field-name",
		inKw:     map[string]bool{},
		wantName: "my_field_name",
	}, {
		desc:     "keyword collision appends trailing underscore",
		inName:   "class",
		inKw:     map[string]bool{"class": true},
		wantName: "class_",
	}, {
		desc:     "hyphenated name colliding after translation",
		inName:   "in-put",
		inKw:     map[string]bool{"in_put": true},
		wantName: "in_put_",
	}}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := SanitizeIdentifier(tt.inName, tt.inKw)
			if got != tt.wantName {
				t.Errorf("SanitizeIdentifier(%q) = %q, want %q", tt.inName, got, tt.wantName)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	p := Position{Filename: "foo.asn1", Line: 12, Column: 4}
	if got, want := p.String(), "foo.asn1:12:4"; got != want {
		t.Errorf("Position.String() = %q, want %q", got, want)
	}
	if got := (Position{}).String(); got != "" {
		t.Errorf("zero Position.String() = %q, want empty", got)
	}
}
