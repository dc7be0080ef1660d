package core

// Split cuts a compact token into its three segments. It fails unless the
// token contains exactly two separators; empty segments are allowed.
func Split(token string) (header, claims, signature string, ok bool) {
	first, second := -1, -1

	for i := 0; i < len(token); i++ {
		if token[i] != '.' {
			continue
		}
		switch {
		case first == -1:
			first = i
		case second == -1:
			second = i
		default:
			return "", "", "", false
		}
	}

	if second == -1 {
		return "", "", "", false
	}

	return token[:first], token[first+1 : second], token[second+1:], true
}

// SigningInput joins the encoded header and claims the way signatures cover them
func SigningInput(header, claims string) string {
	return header + "." + claims
}
