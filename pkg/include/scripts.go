package include

import "strings"

const (
	scriptStart = "<script>"
	scriptEnd   = "</script>"
)

// SplitScripts separates inline script bodies from the rest of a fragment.
// The body is scanned left to right for "<script>"; each one must be closed
// by a later "</script>" or ErrUnterminatedScript is returned. content holds
// everything outside the script blocks, in order.
func SplitScripts(body string) (content string, scripts []string, err error) {
	var sb strings.Builder
	index := 0
	for {
		start := strings.Index(body[index:], scriptStart)
		if start == -1 {
			sb.WriteString(body[index:])
			break
		}
		start += index

		end := strings.Index(body[start+len(scriptStart):], scriptEnd)
		if end == -1 {
			return "", nil, ErrUnterminatedScript
		}
		end += start + len(scriptStart)

		sb.WriteString(body[index:start])
		scripts = append(scripts, body[start+len(scriptStart):end])
		index = end + len(scriptEnd)
	}
	return sb.String(), scripts, nil
}
