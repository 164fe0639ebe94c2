package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartFlags(t *testing.T) {
	defaults := StartConfig{Bind: "tcp://localhost:26658", MetricsBind: ":9100"}

	cases := map[string]struct {
		args    []string
		want    StartConfig
		wantErr bool
	}{
		"defaults": {
			want: defaults,
		},
		"all flags": {
			args: []string{"-bind", "unix:///tmp/swap.sock", "-debug", "-metrics_bind", ""},
			want: StartConfig{Bind: "unix:///tmp/swap.sock", Debug: true},
		},
		"unknown flag": {
			args:    []string{"-foo"},
			wantErr: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := ParseStartFlags(defaults, tc.args)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
