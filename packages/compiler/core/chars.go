package core

// Character code constants
const (
	CharEOF       = 0
	CharTAB       = 9
	CharLF        = 10
	CharCR        = 13
	CharSPACE     = 32
	CharBANG      = 33
	CharDQ        = 34
	CharHASH      = 35
	CharDollar    = 36
	CharPERCENT   = 37
	CharAMPERSAND = 38
	CharSQ        = 39
	CharLPAREN    = 40
	CharRPAREN    = 41
	CharSTAR      = 42
	CharPLUS      = 43
	CharCOMMA     = 44
	CharMINUS     = 45
	CharPERIOD    = 46
	CharSLASH     = 47
	CharCOLON     = 58
	CharLT        = 60
	CharEQ        = 61
	CharGT        = 62
	CharQUESTION  = 63
	CharAT        = 64

	Char0 = 48
	Char9 = 57

	CharA = 65
	CharE = 69
	CharZ = 90

	CharLBRACKET   = 91
	CharBACKSLASH  = 92
	CharRBRACKET   = 93
	CharUnderscore = 95

	CharLowerA = 97
	CharLowerB = 98
	CharLowerE = 101
	CharLowerF = 102
	CharLowerN = 110
	CharLowerR = 114
	CharLowerT = 116
	CharLowerV = 118
	CharLowerZ = 122

	CharLBRACE = 123
	CharBAR    = 124
	CharRBRACE = 125
	CharNBSP   = 160
)

// IsWhitespace checks if a character code represents whitespace
func IsWhitespace(code int) bool {
	return (code >= CharTAB && code <= CharSPACE) || code == CharNBSP
}

// IsDigit checks if a character code represents a digit
func IsDigit(code int) bool {
	return Char0 <= code && code <= Char9
}

// IsAsciiLetter checks if a character code represents an ASCII letter
func IsAsciiLetter(code int) bool {
	return (code >= CharLowerA && code <= CharLowerZ) || (code >= CharA && code <= CharZ)
}

// IsQuote checks if a character code represents a string quote
func IsQuote(code int) bool {
	return code == CharSQ || code == CharDQ
}

// IsIdentifierStart reports whether code may begin a path segment
func IsIdentifierStart(code int) bool {
	return IsAsciiLetter(code) || code == CharUnderscore || code == CharDollar || code > 127
}

// IsIdentifierPart reports whether code may continue a path segment
func IsIdentifierPart(code int) bool {
	return IsIdentifierStart(code) || IsDigit(code)
}
