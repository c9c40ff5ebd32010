package flagx

import (
	"os"
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
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-x", "1"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", ":3000"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-a", ":3000", "-d"},
			allowed: []string{"-a", "-d"},
			want:    []string{"-a", ":3000", "-d"},
		},
		{
			name:    "next dash token is not a value",
			args:    []string{"-k", "-m", "model"},
			allowed: []string{"-k", "-m"},
			want:    []string{"-k", "-m", "model"},
		},
		{
			name:    "repeated flags keep order",
			args:    []string{"-c", "one.json", "-c", "two.json"},
			allowed: []string{"-c"},
			want:    []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:    "empty",
			args:    []string{},
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

func TestConfigFileFlag(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	cases := map[string]struct {
		args []string
		want string
	}{
		"short":       {[]string{"bin", "-c", "/etc/a.json"}, "/etc/a.json"},
		"long":        {[]string{"bin", "-config", "/etc/b.json"}, "/etc/b.json"},
		"absent":      {[]string{"bin", "-a", ":3000"}, ""},
		"last wins":   {[]string{"bin", "-c", "1.json", "-config", "2.json"}, "2.json"},
		"equals form": {[]string{"bin", "-config=3.json"}, "3.json"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			os.Args = tc.args
			assert.Equal(t, tc.want, ConfigFileFlag())
		})
	}
}
