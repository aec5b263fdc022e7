package main

import (
	"errors"
	"strings"
	"testing"
)

func TestProduct(t *testing.T) {
	check := func(in, expect string) {
		t.Helper()
		actual, err := Product([]byte(in))
		if err != nil {
			t.Errorf("%q: %v", in, err)
			return
		}
		ExpectEqual(t, expect, actual.String())
	}
	check("2,3,4", "24")
	check("7", "7")
	check("", "1")
	check(" \r\n\t ", "1")
	check("  5,6\n", "30")
	check("-3,4", "-12")
	check("+3,-4,-1", "12")
	check("0,123456789", "0")
	check("123456789012345678901234567890,-2", "-246913578024691357802469135780")
	check("18446744073709551615,18446744073709551615", "340282366920938463426481119284349108225")
}

func TestProductTrailingCommas(t *testing.T) {
	check := func(in, expect string) {
		t.Helper()
		actual, err := Product([]byte(in))
		if err != nil {
			t.Errorf("%q: %v", in, err)
			return
		}
		ExpectEqual(t, expect, actual.String())
	}
	check("2,", "2")
	check("2,3,", "6")
	check("2,3,,", "6")
	check(",", "1")
	check(",,,", "1")
	check(" 2,3, \n", "6")

	if _, err := Product([]byte("1,,2,")); err == nil {
		t.Error("interior empty token accepted")
	}
}

func TestNumberFormatErrorTruncatesToken(t *testing.T) {
	tok := strings.Repeat("x", 10000)
	msg := (&NumberFormatError{Token: tok}).Error()
	ExpectEqual(t, "invalid number \""+strings.Repeat("x", 64)+"\"", msg)

	ExpectEqual(t, "invalid number \"a\"", (&NumberFormatError{Token: "a"}).Error())
}

func TestProductInvalidToken(t *testing.T) {
	checkErr := func(in, token string) {
		t.Helper()
		_, err := Product([]byte(in))
		var nfe *NumberFormatError
		if !errors.As(err, &nfe) {
			t.Errorf("%q: got %v, want NumberFormatError", in, err)
			return
		}
		ExpectEqual(t, token, nfe.Token)
	}
	checkErr("1,a", "a")
	checkErr("1, 2", " 2")
	checkErr("1,,2", "")
	checkErr(",2", "")
	checkErr("1.5", "1.5")
	checkErr("0x10", "0x10")
	checkErr("1_000", "1_000")
}

func TestCalculateResponse(t *testing.T) {
	out, err := CalculateResponse([]byte("2,3,4"))
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "Fucking Result is here 24\n", string(out))

	out, err = CalculateResponse(nil)
	if err != nil {
		t.Fatal(err)
	}
	ExpectEqual(t, "Fucking Result is here 1\n", string(out))

	again, _ := CalculateResponse([]byte("2,3,4"))
	first, _ := CalculateResponse([]byte("2,3,4"))
	ExpectEqual(t, string(first), string(again))

	if _, err := CalculateResponse([]byte("x")); err == nil {
		t.Error("invalid body accepted")
	}
}
