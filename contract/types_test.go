package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptsVersion(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{SchemaVersion, true},
		{"1.0.0", true},
		{"1.99.0", true}, // newer minor, unknown fields land in extensions
		{"2.0.0", false},
		{"0.9.0", false},
		{"", false},
		{"not-a-version", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			assert.Equal(t, tt.want, AcceptsVersion(tt.version))
		})
	}
}

func TestDecideGate(t *testing.T) {
	limits := GateLimits{MaxErrors: 0, MaxWarnings: 5, MinSchemaVersion: "1.0.0"}

	tests := []struct {
		name   string
		result CheckResult
		want   GateDecision
	}{
		{
			name:   "clean run promotes",
			result: CheckResult{SchemaVersion: SchemaVersion, RunID: "r1"},
			want:   DecisionPromote,
		},
		{
			name: "errors reject",
			result: CheckResult{
				SchemaVersion: SchemaVersion,
				RunID:         "r2",
				Counts:        SeverityCounts{Error: 1},
			},
			want: DecisionReject,
		},
		{
			name: "warning overrun holds",
			result: CheckResult{
				SchemaVersion: SchemaVersion,
				RunID:         "r3",
				Counts:        SeverityCounts{Warning: 6},
			},
			want: DecisionHold,
		},
		{
			name:   "old schema holds",
			result: CheckResult{SchemaVersion: "0.9.0", RunID: "r4"},
			want:   DecisionHold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := DecideGate(tt.result, limits)
			assert.Equal(t, tt.want, gate.Decision)
			assert.Equal(t, tt.result.RunID, gate.RunID)
			assert.Equal(t, SchemaVersion, gate.SchemaVersion)
			assert.NotEmpty(t, gate.Reason)
		})
	}
}

func TestDecideGateErrorsBeatWarnings(t *testing.T) {
	res := CheckResult{
		SchemaVersion: SchemaVersion,
		RunID:         "r5",
		Counts:        SeverityCounts{Error: 3, Warning: 100},
	}
	gate := DecideGate(res, GateLimits{MaxErrors: 0, MaxWarnings: 0})
	assert.Equal(t, DecisionReject, gate.Decision)
}

func TestCheckResultExtensionsRoundTrip(t *testing.T) {
	res := CheckResult{
		SchemaVersion: SchemaVersion,
		RunID:         "run-1",
		Check:         "dupes",
		Findings:      []Finding{},
		Passed:        true,
		Extensions: Extensions{
			"ci_job": "nightly-417",
		},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var back CheckResult
	require.NoError(t, json.Unmarshal(data, &back))

	assert.Equal(t, "nightly-417", back.Extensions["ci_job"])
	assert.Equal(t, res.RunID, back.RunID)
}

func TestSeverityCountsTotal(t *testing.T) {
	c := SeverityCounts{Error: 1, Warning: 2, Info: 3}
	assert.Equal(t, 6, c.Total())
}
