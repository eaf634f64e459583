package validate

import (
	"github.com/ShiraazMoollatjie/goluhn"
)

func IsLuna(s string) bool {
	err := goluhn.Validate(s)
	return err == nil
}

// NewNumber generates a random numeric reference of the given length with a
// trailing Luhn check digit.
func NewNumber(size int) (string, error) {
	number := goluhn.Generate(size)
	return number, nil
}
