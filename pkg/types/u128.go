package types

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var ErrU128Overflow = errors.New("value overflows 128 bits")

// U128 is an unsigned 128-bit integer. The zero value is ready to use.
// It marshals as a decimal string, so it can be embedded in config files
// and serialized state without precision loss.
type U128 struct {
	n uint256.Int
}

func NewU128(v uint64) U128 {
	var z uint256.Int
	z.SetUint64(v)
	return U128{n: z}
}

func MaxU128() U128 {
	var z uint256.Int
	z.SetAllOne()
	z.Rsh(&z, 128)
	return U128{n: z}
}

// U128FromString parses a decimal or 0x-prefixed hex string.
func U128FromString(s string) (U128, error) {
	z, err := uint256.FromDecimal(s)
	if err != nil {
		z, err = uint256.FromHex(s)
		if err != nil {
			return U128{}, errors.Wrapf(err, "invalid u128 %q", s)
		}
	}
	if z.BitLen() > 128 {
		return U128{}, errors.Wrapf(ErrU128Overflow, "invalid u128 %q", s)
	}
	return U128{n: *z}, nil
}

// MustU128FromString is for hardcoded defaults and tests only.
func MustU128FromString(s string) U128 {
	v, err := U128FromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// AddOverflow returns x+y and whether the sum left the 128-bit range.
func (x U128) AddOverflow(y U128) (U128, bool) {
	var z uint256.Int
	_, carry := z.AddOverflow(&x.n, &y.n)
	if carry || z.BitLen() > 128 {
		return U128{}, true
	}
	return U128{n: z}, false
}

// SubUnderflow returns x-y and whether the difference fell below zero.
func (x U128) SubUnderflow(y U128) (U128, bool) {
	var z uint256.Int
	_, underflow := z.SubOverflow(&x.n, &y.n)
	if underflow {
		return U128{}, true
	}
	return U128{n: z}, false
}

func (x U128) Cmp(y U128) int {
	return x.n.Cmp(&y.n)
}

func (x U128) IsZero() bool {
	return x.n.IsZero()
}

func (x U128) Uint64() uint64 {
	return x.n.Uint64()
}

func (x U128) String() string {
	return x.n.Dec()
}

func (x U128) MarshalText() ([]byte, error) {
	return []byte(x.n.Dec()), nil
}

func (x *U128) UnmarshalText(b []byte) error {
	v, err := U128FromString(string(b))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
