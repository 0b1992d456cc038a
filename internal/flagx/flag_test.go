package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		boolFlags    []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-c", "conf.json", "-a", ":5001"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "conf.json"},
		},
		{
			name:         "equals form",
			args:         []string{"--config=alt.json", "-a", ":5001"},
			allowedFlags: []string{"--config"},
			want:         []string{"--config=alt.json"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "next flag is not swallowed as value",
			args:         []string{"-P", "-a", ":8080"},
			allowedFlags: []string{"-P", "-a"},
			want:         []string{"-P", "-a", ":8080"},
		},
		{
			name:         "bool flag does not take the next word",
			args:         []string{"-P", "true", "-d", "dsn"},
			allowedFlags: []string{"-P", "-d"},
			boolFlags:    []string{"-P"},
			want:         []string{"-P", "-d", "dsn"},
		},
		{
			name:         "bool flag equals form kept",
			args:         []string{"-P=false", "-d", "dsn"},
			allowedFlags: []string{"-P", "-d"},
			boolFlags:    []string{"-P"},
			want:         []string{"-P=false", "-d", "dsn"},
		},
		{
			name:         "trailing flag without value",
			args:         []string{"-c"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c"},
		},
		{
			name:         "order preserved",
			args:         []string{"-d", "postgres://x", "-o", "skip", "-s", "k"},
			allowedFlags: []string{"-s", "-d"},
			want:         []string{"-d", "postgres://x", "-s", "k"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags, tt.boolFlags...))
		})
	}
}

func TestConfigFileFlag(t *testing.T) {
	assert.Equal(t, "a.json", ConfigFileFlag([]string{"-a", ":1", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigFileFlag([]string{"-config=b.json"}))
	assert.Equal(t, "", ConfigFileFlag([]string{"-a", ":1"}))
	assert.Equal(t, "", ConfigFileFlag(nil))
}
