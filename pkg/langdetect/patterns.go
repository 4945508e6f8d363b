package langdetect

import (
	"bytes"
	"strings"
)

// pattern recognizes a language from highly indicative snippets.
type pattern struct {
	lang  string
	match func(content []byte) bool
}

// patterns are tried in order, most specific first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var patterns = []pattern{
	{"go", func(c []byte) bool {
		return bytes.HasPrefix(bytes.TrimSpace(c), []byte("package "))
	}},
	{"python", isPython},
	{"html", func(c []byte) bool {
		return containsAny(strings.ToLower(string(c)), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(c []byte) bool {
		t := bytes.TrimSpace(c)
		return (bytes.HasPrefix(t, []byte("{")) || bytes.HasPrefix(t, []byte("["))) && bytes.Contains(t, []byte(`"`))
	}},
	{"dockerfile", func(c []byte) bool {
		s := string(c)
		return strings.HasPrefix(strings.TrimSpace(s), "FROM ") ||
			(strings.Contains(s, "\nFROM ") && strings.Contains(s, "\nRUN ")) ||
			(strings.Contains(s, "WORKDIR ") && strings.Contains(s, "COPY "))
	}},
	{"sql", func(c []byte) bool {
		upper := strings.TrimSpace(strings.ToUpper(string(c)))
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if strings.HasPrefix(upper, kw) {
				return true
			}
		}
		return false
	}},
	{"rust", func(c []byte) bool {
		return containsAny(string(c), "fn main()", "println!", "let mut ")
	}},
	{"javascript", func(c []byte) bool {
		return containsAny(string(c), "=>", "const ", "let ", "console.log")
	}},
	{"yaml", isYAML},
}

func isPython(c []byte) bool {
	s := string(c)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") &&
		(strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ")) {
		return true
	}
	return containsAny(s, "__name__", "__main__")
}

// isYAML counts "key: value" lines and list items.
func isYAML(c []byte) bool {
	count := 0
	for _, line := range bytes.Split(c, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") && line[0] != '"' {
			count++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			count++
		}
	}
	return count >= 2
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
