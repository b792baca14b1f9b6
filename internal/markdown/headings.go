package markdown

import "strings"

// FirstH1 returns the text of the first level-one ATX heading in the
// Markdown body, or the empty string when none exists. Used as the title
// fallback when frontmatter omits one.
func FirstH1(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		text, level, ok := parseHeading(line)
		if ok && level == 1 {
			return text
		}
	}
	return ""
}

// StripLeadingH1 removes a level-one heading when it is the first non-blank
// line of the body, along with any blank lines that follow it. Article
// templates render the title themselves, so a leading H1 would duplicate it.
func StripLeadingH1(body []byte) []byte {
	lines := strings.Split(string(body), "\n")
	for idx, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, level, ok := parseHeading(line); ok && level == 1 {
			rest := lines[idx+1:]
			for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
				rest = rest[1:]
			}
			return []byte(strings.Join(rest, "\n"))
		}
		break
	}
	return body
}

func parseHeading(line string) (text string, level int, ok bool) {
	trimmed := strings.TrimSpace(line)
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level == len(trimmed) || trimmed[level] != ' ' {
		return "", 0, false
	}
	return strings.TrimSpace(trimmed[level:]), level, true
}
