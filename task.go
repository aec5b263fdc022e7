package main

import (
	"fmt"
	"math/big"
	"strings"
)

// NumberFormatError reports a token of the task body that is not a base-10
// integer.
type NumberFormatError struct {
	Token string
}

func (e *NumberFormatError) Error() string {
	// long tokens are cut so the error stays small
	return fmt.Sprintf("invalid number %.64q", e.Token)
}

// Product multiplies the comma-separated integers in body. Tokens are not
// trimmed individually and trailing empty tokens are dropped, so "2,3," is 6
// and "," is the empty product, 1. Empty tokens elsewhere are rejected.
func Product(body []byte) (*big.Int, error) {
	result := big.NewInt(1)
	s := strings.TrimSpace(string(body))
	if s == "" {
		return result, nil
	}

	toks := strings.Split(s, ",")
	for len(toks) > 0 && toks[len(toks)-1] == "" {
		toks = toks[:len(toks)-1]
	}

	n := new(big.Int)
	for _, tok := range toks {
		if _, ok := n.SetString(tok, 10); !ok {
			return nil, &NumberFormatError{Token: tok}
		}
		result.Mul(result, n)
	}
	return result, nil
}

// CalculateResponse returns the /task response body for body.
func CalculateResponse(body []byte) ([]byte, error) {
	p, err := Product(body)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("Fucking Result is here %s\n", p)), nil
}
