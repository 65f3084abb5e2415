// Package address converts between row/column indices and A1-style cell
// addresses.
//
// Column letters use bijective base-26: the digits are A..Z valued 1..26 and
// there is no zero digit, so 26 is "Z" and 27 is "AA".
package address

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxLetters keeps LettersToColumn from overflowing int.
const maxLetters = 12

var (
	// ErrInvalidColumn indicates a column number below 1 or malformed column letters.
	ErrInvalidColumn = errors.New("invalid column")
	// ErrInvalidRow indicates a row number below 1.
	ErrInvalidRow = errors.New("invalid row")
	// ErrInvalidCellName indicates a string that is not an A1-style address.
	ErrInvalidCellName = errors.New("invalid cell name")
)

// ColumnToLetters converts a 1-based column number to its letter form.
func ColumnToLetters(n int) (string, error) {
	if n < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidColumn, n)
	}
	// 14 letters cover every positive int64.
	var buf [16]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:]), nil
}

// LettersToColumn converts column letters (case-insensitive) to a 1-based
// column number. It does not enforce a sheet width limit.
func LettersToColumn(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidColumn)
	}
	if len(s) > maxLetters {
		return 0, fmt.Errorf("%w: %q is too long", ErrInvalidColumn, s)
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			c -= 'A'
		case c >= 'a' && c <= 'z':
			c -= 'a'
		default:
			return 0, fmt.Errorf("%w: %q", ErrInvalidColumn, s)
		}
		n = n*26 + int(c) + 1
	}
	return n, nil
}

// CellName builds the address for a 1-based column and row, e.g. (2, 12) -> "B12".
func CellName(col, row int) (string, error) {
	if row < 1 {
		return "", fmt.Errorf("%w: %d", ErrInvalidRow, row)
	}
	letters, err := ColumnToLetters(col)
	if err != nil {
		return "", err
	}
	return letters + strconv.Itoa(row), nil
}

// MustCellName is like CellName but panics on invalid coordinates. It is
// intended for loops whose indices are known to be 1-based.
func MustCellName(col, row int) string {
	name, err := CellName(col, row)
	if err != nil {
		panic(err)
	}
	return name
}

// SplitCellName parses an address such as "B12" or "$B$12" into its 1-based
// column and row.
func SplitCellName(name string) (col, row int, err error) {
	s := strings.ReplaceAll(strings.TrimSpace(name), "$", "")
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	if i == 0 || i == len(s) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellName, name)
	}
	col, err = LettersToColumn(s[:i])
	if err != nil || col > excelize.MaxColumns {
		return 0, 0, fmt.Errorf("%w: %q: column out of range", ErrInvalidCellName, name)
	}
	digits := s[i:]
	if digits[0] == '0' || strings.IndexFunc(digits, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidCellName, name)
	}
	row, err = strconv.Atoi(digits)
	if err != nil || row > excelize.TotalRows {
		return 0, 0, fmt.Errorf("%w: %q: row out of range", ErrInvalidCellName, name)
	}
	return col, row, nil
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
