// Package planilha parses household spreadsheet exports into transaction
// params. Two header profiles are recognized (Portuguese and English); the
// header row may appear after preamble lines, and both semicolon and comma
// delimiters are tried.
package planilha

type Parser struct{}

func New() *Parser {
	return &Parser{}
}
