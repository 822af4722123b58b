// Command hashpw prints a bcrypt hash for ADMIN_PASSWORD_HASH, or checks a
// password against an existing hash.
//
//	hashpw <password>
//	hashpw -check '<hash>' <password>
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	check := flag.String("check", "", "existing bcrypt hash to compare against")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashpw [-check hash] [-cost n] <password>")
		os.Exit(2)
	}
	plain := flag.Arg(0)

	if *check != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(*check), []byte(plain)); err != nil {
			fmt.Println("FAIL:", err)
			os.Exit(1)
		}
		fmt.Println("SUCCESS")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash:", err)
		os.Exit(1)
	}
	fmt.Println(string(hash))
}
