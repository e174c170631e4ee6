// ====================================
// File: cmd/curve-cli/main.go
// ====================================
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/client"
)

const usage = `Usage: curve-cli [-url URL] <command> [arguments]

Commands:
  init   -authority PK -mint PK -price SOL -slope SOL   create a bonding curve
  info   -mint PK                                       show curve state
  quote  -mint PK -side buy|sell -amount N              preview a trade
  buy    -account PK -mint PK -amount N                 buy tokens
  sell   -account PK -mint PK -amount N                 sell tokens
  update -authority PK -mint PK -price SOL -slope SOL   change curve parameters

Prices and slopes are given in SOL (e.g. 0.001 = 1_000_000 lamports);
amounts are whole token units.
`

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "curved base URL")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	c := client.New(*baseURL, zap.NewNop(), client.WithRetry(3, 500*time.Millisecond))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch flag.Arg(0) {
	case "init":
		err = runInit(ctx, c, flag.Args()[1:])
	case "info":
		err = runInfo(ctx, c, flag.Args()[1:])
	case "quote":
		err = runQuote(ctx, c, flag.Args()[1:])
	case "buy":
		err = runTrade(ctx, c, flag.Args()[1:], "buy")
	case "sell":
		err = runTrade(ctx, c, flag.Args()[1:], "sell")
	case "update":
		err = runUpdate(ctx, c, flag.Args()[1:])
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// sol renders a lamport string from the server as a SOL amount for display.
func sol(lamports string) string {
	n, err := strconv.ParseUint(lamports, 10, 64)
	if err != nil {
		return lamports
	}
	return client.FormatLamports(n) + " SOL"
}

func parseSOLFlag(name, value string) (uint64, error) {
	if value == "" {
		return 0, fmt.Errorf("-%s is required", name)
	}
	lamports, err := client.ParseSOL(value)
	if err != nil {
		return 0, fmt.Errorf("-%s: %w", name, err)
	}
	return lamports, nil
}

func parseKey(name, value string) (solana.PublicKey, error) {
	if value == "" {
		return solana.PublicKey{}, fmt.Errorf("-%s is required", name)
	}
	pk, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("-%s: %w", name, err)
	}
	return pk, nil
}

func runInit(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	authority := fs.String("authority", "", "curve authority public key")
	mint := fs.String("mint", "", "token mint public key")
	price := fs.String("price", "", "initial price in SOL")
	slope := fs.String("slope", "", "price increase per unit in SOL")
	_ = fs.Parse(args)

	authorityPK, err := parseKey("authority", *authority)
	if err != nil {
		return err
	}
	mintPK, err := parseKey("mint", *mint)
	if err != nil {
		return err
	}
	priceLamports, err := parseSOLFlag("price", *price)
	if err != nil {
		return err
	}
	slopeLamports, err := parseSOLFlag("slope", *slope)
	if err != nil {
		return err
	}

	res, err := c.InitializeCurve(ctx, authorityPK, mintPK, priceLamports, slopeLamports)
	if err != nil {
		return err
	}
	fmt.Printf("Curve created at %s (bump %d)\n", res.CurveAddress, res.Bump)
	return nil
}

func runInfo(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	mint := fs.String("mint", "", "token mint public key")
	_ = fs.Parse(args)

	mintPK, err := parseKey("mint", *mint)
	if err != nil {
		return err
	}

	snap, err := c.Curve(ctx, mintPK)
	if err != nil {
		return err
	}
	fmt.Printf("Curve:      %s\n", snap.CurveAddress)
	fmt.Printf("Mint:       %s\n", snap.TokenMint)
	fmt.Printf("Authority:  %s\n", snap.Authority)
	fmt.Printf("Price:      %s (spot %s)\n", sol(snap.InitialPrice), sol(snap.SpotPrice))
	fmt.Printf("Slope:      %s per unit\n", sol(snap.Slope))
	fmt.Printf("Supply:     %s\n", snap.TotalSupply)
	fmt.Printf("Reserve:    %s\n", sol(snap.ReserveBalance))
	return nil
}

func runQuote(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("quote", flag.ExitOnError)
	mint := fs.String("mint", "", "token mint public key")
	side := fs.String("side", "buy", "buy or sell")
	amount := fs.Uint64("amount", 0, "token amount")
	_ = fs.Parse(args)

	mintPK, err := parseKey("mint", *mint)
	if err != nil {
		return err
	}

	quote, err := c.Quote(ctx, mintPK, *side, *amount)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s units: %s\n", quote.Side, quote.Amount, sol(quote.Lamports))
	fmt.Printf("Spot price %s -> %s\n", sol(quote.SpotBefore), sol(quote.SpotAfter))
	return nil
}

func runTrade(ctx context.Context, c *client.Client, args []string, side string) error {
	fs := flag.NewFlagSet(side, flag.ExitOnError)
	account := fs.String("account", "", "trading account public key")
	mint := fs.String("mint", "", "token mint public key")
	amount := fs.Uint64("amount", 0, "token amount")
	_ = fs.Parse(args)

	accountPK, err := parseKey("account", *account)
	if err != nil {
		return err
	}
	mintPK, err := parseKey("mint", *mint)
	if err != nil {
		return err
	}

	var res *client.TradeResult
	if side == "buy" {
		res, err = c.Buy(ctx, accountPK, mintPK, *amount)
	} else {
		res, err = c.Sell(ctx, accountPK, mintPK, *amount)
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s %s units for %s, supply now %s\n",
		res.Side, res.Amount, sol(res.Lamports), res.NewSupply)
	return nil
}

func runUpdate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	authority := fs.String("authority", "", "curve authority public key")
	mint := fs.String("mint", "", "token mint public key")
	price := fs.String("price", "", "new initial price in SOL")
	slope := fs.String("slope", "", "new price increase per unit in SOL")
	_ = fs.Parse(args)

	authorityPK, err := parseKey("authority", *authority)
	if err != nil {
		return err
	}
	mintPK, err := parseKey("mint", *mint)
	if err != nil {
		return err
	}
	priceLamports, err := parseSOLFlag("price", *price)
	if err != nil {
		return err
	}
	slopeLamports, err := parseSOLFlag("slope", *slope)
	if err != nil {
		return err
	}

	if err := c.UpdateParameters(ctx, authorityPK, mintPK, priceLamports, slopeLamports); err != nil {
		return err
	}
	fmt.Println("Parameters updated")
	return nil
}
