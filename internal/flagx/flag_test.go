package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.yaml", "-g", "localhost:9090"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.yaml"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-g", ":9090"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "unknown flags and positionals ignored",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-c", "-b", "memory"},
			allowed: []string{"-c", "-b"},
			want:    []string{"-c", "-b", "memory"},
		},
		{
			name:    "equals value may start with dash",
			args:    []string{"--config=--weird.json"},
			allowed: []string{"--config"},
			want:    []string{"--config=--weird.json"},
		},
		{
			name:    "repeated flag preserved in order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFile(t *testing.T) {
	assert.Equal(t, "/etc/tl.yaml", ConfigFile([]string{"-g", ":1", "-c", "/etc/tl.yaml"}))
	assert.Equal(t, "/etc/long.json", ConfigFile([]string{"-config", "/etc/long.json"}))
	assert.Equal(t, "b.json", ConfigFile([]string{"-c", "a.json", "-config", "b.json"}))
	assert.Empty(t, ConfigFile([]string{"-x", "1"}))
}
