package parser

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		argv       []string
		background bool
	}{
		{"simple", "ls -l /tmp", []string{"ls", "-l", "/tmp"}, false},
		{"trailing newline", "echo hi\n", []string{"echo", "hi"}, false},
		{"extra spaces", "  echo   hi  ", []string{"echo", "hi"}, false},
		{"empty", "", nil, false},
		{"only spaces", "   \n", nil, false},
		{"background", "sleep 5 &", []string{"sleep", "5"}, true},
		{"background with newline", "sleep 5 &\n", []string{"sleep", "5"}, true},
		{"ampersand not a token", "echo a&b", []string{"echo", "a&b"}, false},
		{"single quotes", "echo 'hello world'", []string{"echo", "hello world"}, false},
		{"quoted background", "'my prog' arg &", []string{"my prog", "arg"}, true},
		{"unterminated quote drops tail", "echo 'oops", []string{"echo"}, false},
		{"lone ampersand", "&", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, bg := Split(tt.line)
			if !reflect.DeepEqual(argv, tt.argv) {
				t.Errorf("Split(%q) argv = %#v, want %#v", tt.line, argv, tt.argv)
			}
			if bg != tt.background {
				t.Errorf("Split(%q) background = %v, want %v", tt.line, bg, tt.background)
			}
		})
	}
}
