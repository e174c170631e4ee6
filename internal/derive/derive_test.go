package derive

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurveAddressDeterministic(t *testing.T) {
	mint := solana.NewWallet().PublicKey()

	addr1, bump1, err := CurveAddress(mint)
	require.NoError(t, err)
	addr2, bump2, err := CurveAddress(mint)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2)
	assert.Equal(t, bump1, bump2)
}

func TestCurveAddressPerMint(t *testing.T) {
	a, _, err := CurveAddress(solana.NewWallet().PublicKey())
	require.NoError(t, err)
	b, _, err := CurveAddress(solana.NewWallet().PublicKey())
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "different mints must derive different curve addresses")
}

func TestVerifyCurveAddress(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	addr, bump, err := CurveAddress(mint)
	require.NoError(t, err)

	require.NoError(t, VerifyCurveAddress(addr, mint, bump))

	// Wrong mint must not verify.
	err = VerifyCurveAddress(addr, solana.NewWallet().PublicKey(), bump)
	assert.Error(t, err)
}
