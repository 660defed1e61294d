package main

import (
	"github.com/pohpos/solana-credit-score/cmd/solanacreditscore"
)

func main() {
	solanacreditscore.Execute()
}
