package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/anymon/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		isTTY    bool
		env      map[string]string
		expected detector.ColorMode
	}{
		{name: "terminal gets color", isTTY: true, expected: detector.ModeColor},
		{name: "pipe is plain", isTTY: false, expected: detector.ModePlain},
		{name: "NO_COLOR forces plain", isTTY: true, env: map[string]string{"NO_COLOR": "1"}, expected: detector.ModePlain},
		{name: "dumb terminal is plain", isTTY: true, env: map[string]string{"TERM": "dumb"}, expected: detector.ModePlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.Detect(tt.isTTY, func(k string) string { return tt.env[k] })
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.ColorMode
		userFlag     string
		expected     detector.ColorMode
		wantErr      bool
	}{
		{name: "auto respects detection", autoDetected: detector.ModePlain, userFlag: "auto", expected: detector.ModePlain},
		{name: "empty respects detection", autoDetected: detector.ModeColor, userFlag: "", expected: detector.ModeColor},
		{name: "always overrides", autoDetected: detector.ModePlain, userFlag: "always", expected: detector.ModeColor},
		{name: "never overrides", autoDetected: detector.ModeColor, userFlag: "never", expected: detector.ModePlain},
		{name: "invalid flag errors", autoDetected: detector.ModeColor, userFlag: "sometimes", expected: detector.ModeColor, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detector.ResolveMode(tt.autoDetected, tt.userFlag)
			if tt.wantErr {
				require.ErrorContains(t, err, "invalid flag value")
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}
