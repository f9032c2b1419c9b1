package lexer

import "strconv"

// parseInt converts a maximal decimal digit run into its int64 value.
func parseInt(lexeme string) (int64, error) {
	return strconv.ParseInt(lexeme, 10, 64)
}

// parseFloat converts a decimal literal with a required fractional part
// into its float64 value.
func parseFloat(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}
