package tokens

import (
	"math/big"
	"strings"
)

// TokenURI builds the metadata uri bound to a wrapped token.
// "fixed" sends base as is, anything else appends "/<id>.json".
func TokenURI(mode, base string, tokenID *big.Int) string {
	if mode == "fixed" {
		return base
	}
	return strings.TrimSuffix(base, "/") + "/" + tokenID.String() + ".json"
}
