// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagValidators(t *testing.T) {
	tests := []struct {
		name       string
		value      any
		validators []FlagValidatorType
		wantErr    bool
	}{
		{"output ok", "yaml", []FlagValidatorType{OutputValidator}, false},
		{"output bad", "csv", []FlagValidatorType{OutputValidator}, true},
		{"jammed", "--league", []FlagValidatorType{JammedFlagValidator}, true},
		{"url ok", "https://example.com/wp-json/sportspress/v2", []FlagValidatorType{JammedFlagValidator, URLValidator}, false},
		{"url no scheme", "example.com", []FlagValidatorType{URLValidator}, true},
		{"url ftp", "ftp://example.com", []FlagValidatorType{URLValidator}, true},
		{"positive", 69, []FlagValidatorType{PositiveValidator}, false},
		{"zero", 0, []FlagValidatorType{PositiveValidator}, true},
		{"negative", -3, []FlagValidatorType{PositiveValidator}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validators...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("101")
	assert.NoError(t, err)
	assert.Equal(t, 101, id)

	for _, bad := range []string{"", "0", "-4", "abc", "1.5"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
	}
}
