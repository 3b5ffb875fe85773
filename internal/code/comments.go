package code

import (
	"regexp"
	"strings"
)

// Comment starts a line only the presenter sees.
const Comment = "///"

var (
	commentLine = regexp.MustCompile("(?m)[\r\n]+^" + Comment + ".*$")
	// a fence with nothing left inside once its comments are hidden
	emptyFence = regexp.MustCompile("(?m)^(?:```|~~~)(?:\\s*\\w+)?\\s*\\n\\s*(?:```|~~~)$")
)

// HideComments drops every comment line, and any code block that held
// nothing but comments.
func HideComments(content string) string {
	return emptyFence.ReplaceAllString(commentLine.ReplaceAllString(content, ""), "")
}

// RemoveComments keeps the text of comment lines without their marker, so
// copied code carries the presenter's notes.
func RemoveComments(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, Comment); ok {
			lines[i] = strings.TrimPrefix(rest, " ")
		}
	}
	return strings.Join(lines, "\n")
}
