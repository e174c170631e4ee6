package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/curve"
	"github.com/rovshanmuradov/curve-engine/internal/derive"
	"github.com/rovshanmuradov/curve-engine/internal/ledger"
	"github.com/rovshanmuradov/curve-engine/internal/store"
)

type fixture struct {
	engine    *Engine
	ledger    *ledger.InMemory
	store     *store.MemoryStore
	authority solana.PublicKey
	mint      solana.PublicKey
	addr      solana.PublicKey
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	l := ledger.NewInMemory()
	s := store.NewMemoryStore()
	mint := solana.NewWallet().PublicKey()
	addr, _, err := derive.CurveAddress(mint)
	require.NoError(t, err)

	return &fixture{
		engine:    New(s, l, l, nil, zap.NewNop()),
		ledger:    l,
		store:     s,
		authority: solana.NewWallet().PublicKey(),
		mint:      mint,
		addr:      addr,
	}
}

func (f *fixture) initialize(t *testing.T, initialPrice, slope uint64) *InitializeResult {
	t.Helper()
	res, err := f.engine.Initialize(context.Background(), InitializeRequest{
		Authority:    f.authority,
		TokenMint:    f.mint,
		InitialPrice: initialPrice,
		Slope:        slope,
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) fund(t *testing.T, id solana.PublicKey, lamports uint64) {
	t.Helper()
	require.NoError(t, f.ledger.Credit(id, lamports))
}

func TestInitialize(t *testing.T) {
	f := newFixture(t)

	res := f.initialize(t, 1_000_000, 100_000)
	assert.Equal(t, f.addr, res.CurveAddress)

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), st.TotalSupply)
	assert.Equal(t, f.authority, st.Authority)
	assert.Equal(t, res.Bump, st.Bump)
	require.NoError(t, derive.VerifyCurveAddress(f.addr, f.mint, st.Bump))
}

func TestInitializeRejectsInvalidParameters(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Initialize(context.Background(), InitializeRequest{
		Authority: f.authority, TokenMint: f.mint, InitialPrice: 0, Slope: 1,
	})
	assert.ErrorIs(t, err, curve.ErrInvalidParameters)

	_, err = f.engine.Initialize(context.Background(), InitializeRequest{
		Authority: f.authority, TokenMint: f.mint, InitialPrice: 1, Slope: 0,
	})
	assert.ErrorIs(t, err, curve.ErrInvalidParameters)
}

func TestInitializeTwiceFails(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	_, err := f.engine.Initialize(context.Background(), InitializeRequest{
		Authority:    solana.NewWallet().PublicKey(),
		TokenMint:    f.mint,
		InitialPrice: 5,
		Slope:        5,
	})
	assert.ErrorIs(t, err, curve.ErrAlreadyInitialized)

	// The existing record is untouched.
	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), st.InitialPrice)
	assert.Equal(t, f.authority, st.Authority)
}

func TestBuyReferenceScenario(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	buyer := solana.NewWallet().PublicKey()
	f.fund(t, buyer, 20_000_000)

	res, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: buyer, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(15_000_000), res.Cost)
	assert.Equal(t, uint64(10), res.NewSupply)

	// Payment landed in curve custody, tokens with the buyer.
	assert.Equal(t, uint64(5_000_000), f.ledger.ReserveBalance(buyer))
	assert.Equal(t, uint64(15_000_000), f.ledger.ReserveBalance(f.addr))
	assert.Equal(t, uint64(10), f.ledger.TokenBalance(f.mint, buyer))
}

func TestBuySellExactRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	trader := solana.NewWallet().PublicKey()
	f.fund(t, trader, 15_000_000)

	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: trader, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)

	res, err := f.engine.Sell(context.Background(), SellRequest{Seller: trader, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(15_000_000), res.Proceeds)
	assert.Equal(t, uint64(0), res.NewSupply)

	// The curve returned to its original state.
	assert.Equal(t, uint64(15_000_000), f.ledger.ReserveBalance(trader))
	assert.Equal(t, uint64(0), f.ledger.ReserveBalance(f.addr))
	assert.Equal(t, uint64(0), f.ledger.TokenBalance(f.mint, trader))
}

func TestBuyZeroAmount(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: solana.NewWallet().PublicKey(), TokenMint: f.mint, Amount: 0})
	assert.ErrorIs(t, err, curve.ErrInvalidAmount)
}

func TestBuyUninitializedCurve(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: solana.NewWallet().PublicKey(), TokenMint: f.mint, Amount: 1})
	assert.ErrorIs(t, err, curve.ErrNotInitialized)
}

func TestBuyInsufficientFundsMutatesNothing(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	buyer := solana.NewWallet().PublicKey()
	f.fund(t, buyer, 14_999_999) // one lamport short of the 15_000_000 cost

	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: buyer, TokenMint: f.mint, Amount: 10})
	assert.ErrorIs(t, err, curve.ErrInsufficientFunds)

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), st.TotalSupply)
	assert.Equal(t, uint64(14_999_999), f.ledger.ReserveBalance(buyer))
	assert.Equal(t, uint64(0), f.ledger.TokenBalance(f.mint, buyer))
}

func TestSellMoreThanSupply(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	trader := solana.NewWallet().PublicKey()
	f.fund(t, trader, 15_000_000)
	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: trader, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)

	_, err = f.engine.Sell(context.Background(), SellRequest{Seller: trader, TokenMint: f.mint, Amount: 11})
	assert.ErrorIs(t, err, curve.ErrInsufficientSupply)

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), st.TotalSupply, "failed sell must not mutate supply")
}

func TestSellWithoutTokens(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	// Someone else buys so the supply exists.
	buyer := solana.NewWallet().PublicKey()
	f.fund(t, buyer, 15_000_000)
	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: buyer, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)

	// A stranger with no tokens cannot sell into the curve.
	stranger := solana.NewWallet().PublicKey()
	_, err = f.engine.Sell(context.Background(), SellRequest{Seller: stranger, TokenMint: f.mint, Amount: 5})
	assert.ErrorIs(t, err, curve.ErrInsufficientBalance)

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), st.TotalSupply)
	assert.Equal(t, uint64(15_000_000), f.ledger.ReserveBalance(f.addr))
}

func TestUpdateParameters(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	res, err := f.engine.UpdateParameters(context.Background(), UpdateParametersRequest{
		Authority:    f.authority,
		TokenMint:    f.mint,
		InitialPrice: 2_000_000,
		Slope:        50_000,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000), res.InitialPrice)

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000), st.InitialPrice)
	assert.Equal(t, uint64(50_000), st.Slope)
	assert.Equal(t, uint64(0), st.TotalSupply)
}

func TestUpdateParametersUnauthorized(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	_, err := f.engine.UpdateParameters(context.Background(), UpdateParametersRequest{
		Authority:    solana.NewWallet().PublicKey(),
		TokenMint:    f.mint,
		InitialPrice: 2,
		Slope:        2,
	})
	assert.ErrorIs(t, err, curve.ErrUnauthorized)

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), st.InitialPrice)
	assert.Equal(t, uint64(100_000), st.Slope)
}

func TestUpdateParametersRejectsZero(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	_, err := f.engine.UpdateParameters(context.Background(), UpdateParametersRequest{
		Authority: f.authority, TokenMint: f.mint, InitialPrice: 0, Slope: 1,
	})
	assert.ErrorIs(t, err, curve.ErrInvalidParameters)
}

func TestSplitBuysMatchOneShotCost(t *testing.T) {
	oneShot := newFixture(t)
	oneShot.initialize(t, 1_000_000, 100_000)
	split := newFixture(t)
	split.initialize(t, 1_000_000, 100_000)

	buyerA := solana.NewWallet().PublicKey()
	buyerB := solana.NewWallet().PublicKey()
	oneShot.fund(t, buyerA, 1_000_000_000)
	split.fund(t, buyerB, 1_000_000_000)

	resA, err := oneShot.engine.Buy(context.Background(), BuyRequest{Buyer: buyerA, TokenMint: oneShot.mint, Amount: 100})
	require.NoError(t, err)

	// The average-price integral is exact on a linear curve, so ten buys of
	// 10 cost the same total as one buy of 100 while each chunk gets strictly
	// dearer. Splitting never earns a discount.
	var cumulative, prevChunk uint64
	for i := 0; i < 10; i++ {
		res, err := split.engine.Buy(context.Background(), BuyRequest{Buyer: buyerB, TokenMint: split.mint, Amount: 10})
		require.NoError(t, err)
		if i > 0 {
			assert.Greater(t, res.Cost, prevChunk, "later chunks buy at higher prices")
		}
		prevChunk = res.Cost
		cumulative += res.Cost
	}

	stA, err := oneShot.store.Load(oneShot.addr)
	require.NoError(t, err)
	stB, err := split.store.Load(split.addr)
	require.NoError(t, err)
	assert.Equal(t, stA.TotalSupply, stB.TotalSupply, "same final supply either way")
	assert.Equal(t, resA.Cost, cumulative, "exact integration makes splitting cost-neutral")
	assert.GreaterOrEqual(t, cumulative, resA.Cost)
}

func TestConcurrentBuysSameCurve(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000, 10)

	const (
		traders   = 16
		perTrader = 5
	)

	var wg sync.WaitGroup
	for i := 0; i < traders; i++ {
		buyer := solana.NewWallet().PublicKey()
		f.fund(t, buyer, 1_000_000_000)
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perTrader; j++ {
				_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: buyer, TokenMint: f.mint, Amount: 1})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	st, err := f.store.Load(f.addr)
	require.NoError(t, err)
	assert.Equal(t, uint64(traders*perTrader), st.TotalSupply,
		"interleaved buys must never lose a supply update")
}

func TestConcurrentInitializeSingleWinner(t *testing.T) {
	f := newFixture(t)

	const racers = 8
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		wins  int
		races int
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.engine.Initialize(context.Background(), InitializeRequest{
				Authority:    solana.NewWallet().PublicKey(),
				TokenMint:    f.mint,
				InitialPrice: 1_000,
				Slope:        10,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if assert.ErrorIs(t, err, curve.ErrAlreadyInitialized) {
				races++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins, "exactly one initializer must win")
	assert.Equal(t, racers-1, races)
}

func TestCurveSnapshot(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	trader := solana.NewWallet().PublicKey()
	f.fund(t, trader, 15_000_000)
	_, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: trader, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)

	info, err := f.engine.Curve(context.Background(), f.mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), info.TotalSupply)
	assert.Equal(t, uint64(2_000_000), info.SpotPrice)
	assert.Equal(t, uint64(15_000_000), info.ReserveBalance)
	assert.Equal(t, f.authority, info.Authority)
}

func TestQuoteMatchesExecution(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	quote, err := f.engine.QuoteTrade(context.Background(), f.mint, QuoteBuy, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(15_000_000), quote.Lamports)
	assert.Equal(t, uint64(1_000_000), quote.SpotBefore)
	assert.Equal(t, uint64(2_000_000), quote.SpotAfter)

	buyer := solana.NewWallet().PublicKey()
	f.fund(t, buyer, quote.Lamports)
	res, err := f.engine.Buy(context.Background(), BuyRequest{Buyer: buyer, TokenMint: f.mint, Amount: 10})
	require.NoError(t, err)
	assert.Equal(t, quote.Lamports, res.Cost, "quote must match execution when no trade intervenes")

	sellQuote, err := f.engine.QuoteTrade(context.Background(), f.mint, QuoteSell, 10)
	require.NoError(t, err)
	assert.Equal(t, uint64(15_000_000), sellQuote.Lamports)
}

func TestQuoteSellBeyondSupply(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, 1_000_000, 100_000)

	_, err := f.engine.QuoteTrade(context.Background(), f.mint, QuoteSell, 1)
	assert.ErrorIs(t, err, curve.ErrInsufficientSupply)
}

func TestIndependentCurves(t *testing.T) {
	l := ledger.NewInMemory()
	s := store.NewMemoryStore()
	e := New(s, l, l, nil, zap.NewNop())

	mintA := solana.NewWallet().PublicKey()
	mintB := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	for _, mint := range []solana.PublicKey{mintA, mintB} {
		_, err := e.Initialize(context.Background(), InitializeRequest{
			Authority: authority, TokenMint: mint, InitialPrice: 1_000, Slope: 10,
		})
		require.NoError(t, err)
	}

	buyer := solana.NewWallet().PublicKey()
	require.NoError(t, l.Credit(buyer, 1_000_000))
	_, err := e.Buy(context.Background(), BuyRequest{Buyer: buyer, TokenMint: mintA, Amount: 3})
	require.NoError(t, err)

	infoA, err := e.Curve(context.Background(), mintA)
	require.NoError(t, err)
	infoB, err := e.Curve(context.Background(), mintB)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), infoA.TotalSupply)
	assert.Equal(t, uint64(0), infoB.TotalSupply, "curves for different mints are independent")
}
