// =============================
// File: internal/api/handlers.go
// =============================
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/curve-engine/internal/engine"
	"github.com/rovshanmuradov/curve-engine/internal/metrics"
)

func (s *Server) initializeCurve(c *gin.Context) {
	var req InitializeCurveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	authority, err := parsePublicKey("authority", req.Authority)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mint, err := parsePublicKey("token_mint", req.TokenMint)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	initialPrice, err := parseUint64("initial_price", req.InitialPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slope, err := parseUint64("slope", req.Slope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.engine.Initialize(c.Request.Context(), engine.InitializeRequest{
		Authority:    authority,
		TokenMint:    mint,
		InitialPrice: initialPrice,
		Slope:        slope,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	metrics.CurvesInitialized.Inc()
	c.JSON(http.StatusCreated, InitializeCurveResponse{
		CurveAddress: res.CurveAddress.String(),
		Bump:         res.Bump,
	})
}

func (s *Server) getCurve(c *gin.Context) {
	mint, err := parsePublicKey("mint", c.Param("mint"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := s.engine.Curve(c.Request.Context(), mint)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, CurveResponse{
		CurveAddress:   info.CurveAddress.String(),
		TokenMint:      info.TokenMint.String(),
		Authority:      info.Authority.String(),
		InitialPrice:   formatUint64(info.InitialPrice),
		Slope:          formatUint64(info.Slope),
		TotalSupply:    formatUint64(info.TotalSupply),
		SpotPrice:      formatUint64(info.SpotPrice),
		ReserveBalance: formatUint64(info.ReserveBalance),
		Bump:           info.Bump,
	})
}

func (s *Server) quote(c *gin.Context) {
	mint, err := parsePublicKey("mint", c.Param("mint"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var side engine.QuoteSide
	switch c.Query("side") {
	case "buy":
		side = engine.QuoteBuy
	case "sell":
		side = engine.QuoteSell
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "side must be \"buy\" or \"sell\""})
		return
	}

	amount, err := parseUint64("amount", c.Query("amount"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := s.engine.QuoteTrade(c.Request.Context(), mint, side, amount)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		CurveAddress: quote.CurveAddress.String(),
		Side:         string(quote.Side),
		Amount:       formatUint64(quote.Amount),
		Lamports:     formatUint64(quote.Lamports),
		SpotBefore:   formatUint64(quote.SpotBefore),
		SpotAfter:    formatUint64(quote.SpotAfter),
	})
}

func (s *Server) buy(c *gin.Context) {
	mint, err := parsePublicKey("mint", c.Param("mint"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	buyer, err := parsePublicKey("account", req.Account)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseUint64("amount", req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.engine.Buy(c.Request.Context(), engine.BuyRequest{
		Buyer:     buyer,
		TokenMint: mint,
		Amount:    amount,
	})
	if err != nil {
		metrics.TradesTotal.WithLabelValues("buy", "failed").Inc()
		abortWithError(c, err)
		return
	}

	metrics.TradesTotal.WithLabelValues("buy", "completed").Inc()
	metrics.TradeVolume.WithLabelValues("buy").Add(float64(res.Cost))
	s.logger.Debug("Buy served",
		zap.String("curve", res.CurveAddress.String()),
		zap.Uint64("cost", res.Cost))

	c.JSON(http.StatusOK, TradeResponse{
		CurveAddress: res.CurveAddress.String(),
		Side:         "buy",
		Amount:       formatUint64(amount),
		Lamports:     formatUint64(res.Cost),
		NewSupply:    formatUint64(res.NewSupply),
	})
}

func (s *Server) sell(c *gin.Context) {
	mint, err := parsePublicKey("mint", c.Param("mint"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	seller, err := parsePublicKey("account", req.Account)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := parseUint64("amount", req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.engine.Sell(c.Request.Context(), engine.SellRequest{
		Seller:    seller,
		TokenMint: mint,
		Amount:    amount,
	})
	if err != nil {
		metrics.TradesTotal.WithLabelValues("sell", "failed").Inc()
		abortWithError(c, err)
		return
	}

	metrics.TradesTotal.WithLabelValues("sell", "completed").Inc()
	metrics.TradeVolume.WithLabelValues("sell").Add(float64(res.Proceeds))

	c.JSON(http.StatusOK, TradeResponse{
		CurveAddress: res.CurveAddress.String(),
		Side:         "sell",
		Amount:       formatUint64(amount),
		Lamports:     formatUint64(res.Proceeds),
		NewSupply:    formatUint64(res.NewSupply),
	})
}

func (s *Server) updateParameters(c *gin.Context) {
	mint, err := parsePublicKey("mint", c.Param("mint"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateParametersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	authority, err := parsePublicKey("authority", req.Authority)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	initialPrice, err := parseUint64("initial_price", req.InitialPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slope, err := parseUint64("slope", req.Slope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.engine.UpdateParameters(c.Request.Context(), engine.UpdateParametersRequest{
		Authority:    authority,
		TokenMint:    mint,
		InitialPrice: initialPrice,
		Slope:        slope,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, UpdateParametersResponse{
		CurveAddress: res.CurveAddress.String(),
		InitialPrice: formatUint64(res.InitialPrice),
		Slope:        formatUint64(res.Slope),
	})
}
