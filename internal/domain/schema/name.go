package schema

import "strings"

const namePrefix = "Dr."

// NameParts is the best-effort decomposition of a display name.
type NameParts struct {
	First  string `json:"first"`
	Middle string `json:"middle"`
	Last   string `json:"last"`
}

// ComposeFullName builds "Dr. <first> <middle> <last>", skipping absent parts.
// It returns "" when every part is empty.
func ComposeFullName(first, middle, last string) string {
	parts := strings.Fields(first + " " + middle + " " + last)
	if len(parts) == 0 {
		return ""
	}
	return namePrefix + " " + strings.Join(parts, " ")
}

// SplitFullName reverses ComposeFullName. It is lossy for names whose parts
// contain spaces: every interior token goes to Middle.
func SplitFullName(full string) NameParts {
	tokens := strings.Fields(full)
	if len(tokens) > 0 && len(tokens[0]) >= len(namePrefix) && strings.EqualFold(tokens[0][:len(namePrefix)], namePrefix) {
		if rest := tokens[0][len(namePrefix):]; rest != "" {
			tokens[0] = rest
		} else {
			tokens = tokens[1:]
		}
	}

	switch len(tokens) {
	case 0:
		return NameParts{}
	case 1:
		return NameParts{First: tokens[0]}
	case 2:
		return NameParts{First: tokens[0], Last: tokens[1]}
	default:
		return NameParts{
			First:  tokens[0],
			Middle: strings.Join(tokens[1:len(tokens)-1], " "),
			Last:   tokens[len(tokens)-1],
		}
	}
}
