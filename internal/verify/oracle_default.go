//go:build !gmp

package verify

// NewOracle returns the reference oracle of this build: math/big.
func NewOracle() Oracle { return BigOracle{} }
