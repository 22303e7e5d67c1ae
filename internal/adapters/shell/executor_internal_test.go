package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		cmdEnv   []string
		expected []string
	}{
		{
			name:     "System Only",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			expected: []string{"PATH=/bin", "USER=test"},
		},
		{
			name:     "Command Override",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			cmdEnv:   []string{"USER=dotbuild", "FOO=bar"},
			expected: []string{"FOO=bar", "PATH=/bin", "USER=dotbuild"},
		},
		{
			name:     "Malformed Entries Ignored",
			sysEnv:   []string{"USER=test", "garbage"},
			expected: []string{"USER=test"},
		},
		{
			name:     "Value With Equals",
			cmdEnv:   []string{"OPTS=a=b"},
			expected: []string{"OPTS=a=b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resolveEnvironment(tt.sysEnv, tt.cmdEnv))
		})
	}
}
