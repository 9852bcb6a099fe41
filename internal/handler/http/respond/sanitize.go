package respond

import (
	"regexp"
)

var (
	// URL 形式の DSN に含まれるパスワード
	dsnPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)

	// key=value 形式の DSN に含まれるパスワード
	kvPasswordPattern = regexp.MustCompile(`(?i)\bpassword=('[^']*'|\S+)`)
)

// SanitizeError returns the error message with database credentials masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dsnPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "password=****")
	return msg
}
