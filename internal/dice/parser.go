package dice

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	dicePattern       = regexp.MustCompile(`(\d*)[dD](\d+)`)
	negativeCountPat  = regexp.MustCompile(`-\d*[dD]\d+`)
	signedNumberPat   = regexp.MustCompile(`[+-]\d+`)
)

// Parse converts dice notation text into an Expression.
//
// Supported forms: "d6", "3d6", "2d20+5", "1d8+2d6-3", "d20 + 3".
// Whitespace between tokens is cosmetic and stripped before parsing;
// the "d" separator is case-insensitive. Counts and sides must be
// strictly positive; an omitted count defaults to 1. Every signed
// number token not immediately followed by "d" is a modifier, and all
// modifier tokens sum algebraically. A bare modifier with no dice
// tokens is not valid notation; use Constant for dice-free
// expressions.
//
// Postcondition: returns a well-formed Expression, or a *ParseError
// naming the offending token. Pure function: same text always yields
// a structurally equal Expression.
func Parse(text string) (Expression, error) {
	if strings.TrimSpace(text) == "" {
		return Expression{}, parseErrorf(text, "empty expression")
	}

	expr := whitespacePattern.ReplaceAllString(text, "")

	if bad := invalidChars(expr); bad != "" {
		return Expression{}, parseErrorf(text, "invalid characters: %s", bad)
	}

	// A minus sign attached to a dice token would be a negative dice
	// count, which is never valid regardless of modifier handling.
	if negativeCountPat.MatchString(expr) {
		return Expression{}, parseErrorf(text, "negative dice counts are not allowed")
	}

	matches := dicePattern.FindAllStringSubmatch(expr, -1)
	if len(matches) == 0 {
		return Expression{}, parseErrorf(text, "no dice notation found")
	}

	groups := make([]Group, 0, len(matches))
	for _, m := range matches {
		token, countStr, sidesStr := m[0], m[1], m[2]

		count := 1
		if countStr != "" {
			var err error
			count, err = strconv.Atoi(countStr)
			if err != nil {
				return Expression{}, parseErrorf(text, "invalid dice count in %q: %v", token, err)
			}
		}
		if count <= 0 {
			return Expression{}, parseErrorf(text, "dice count must be positive in %q, got %d", token, count)
		}

		sides, err := strconv.Atoi(sidesStr)
		if err != nil {
			return Expression{}, parseErrorf(text, "invalid dice sides in %q: %v", token, err)
		}
		if sides <= 0 {
			return Expression{}, parseErrorf(text, "dice sides must be positive in %q, got %d", token, sides)
		}

		groups = append(groups, Group{Count: count, Die: Die{Sides: sides}})
	}

	modifier, err := parseModifiers(text, expr)
	if err != nil {
		return Expression{}, err
	}

	return Expression{Groups: groups, Modifier: modifier}, nil
}

// MustParse parses text and panics on error. Useful for fixtures and
// package-level values built from trusted notation.
func MustParse(text string) Expression {
	e, err := Parse(text)
	if err != nil {
		panic("dice: MustParse failed for expression " + text + ": " + err.Error())
	}
	return e
}

// Valid reports whether text is parseable dice notation.
func Valid(text string) bool {
	_, err := Parse(text)
	return err == nil
}

// parseModifiers sums every signed number token that is not the count
// of a dice token (i.e. not immediately followed by "d"/"D").
func parseModifiers(original, expr string) (int, error) {
	modifier := 0
	for _, loc := range signedNumberPat.FindAllStringIndex(expr, -1) {
		end := loc[1]
		if end < len(expr) && (expr[end] == 'd' || expr[end] == 'D') {
			continue // signed dice count, handled by the dice scan
		}
		v, err := strconv.Atoi(expr[loc[0]:end])
		if err != nil {
			return 0, parseErrorf(original, "invalid modifier %q: %v", expr[loc[0]:end], err)
		}
		modifier += v
	}
	return modifier, nil
}

// invalidChars returns the characters of expr outside the dice
// notation alphabet [0-9dD+-], deduplicated case-insensitively and
// sorted, or "" when every character is valid.
func invalidChars(expr string) string {
	seen := map[rune]bool{}
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
		case r == 'd' || r == 'D':
		case r == '+' || r == '-':
		default:
			seen[unicode.ToLower(r)] = true
		}
	}
	if len(seen) == 0 {
		return ""
	}
	bad := make([]rune, 0, len(seen))
	for r := range seen {
		bad = append(bad, r)
	}
	sort.Slice(bad, func(i, j int) bool { return bad[i] < bad[j] })
	return string(bad)
}
