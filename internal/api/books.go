package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/greenacre-dev/farmdesk/internal/ledger"
)

func (s *Server) period(c *gin.Context) (ledger.Period, bool) {
	p, err := ledger.ParsePeriod(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return ledger.Period{}, false
	}
	return p, true
}

func (s *Server) fail(c *gin.Context, msg string, err error) {
	s.logger.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func (s *Server) accountLedger(c *gin.Context) {
	period, ok := s.period(c)
	if !ok {
		return
	}
	acct, l, err := s.books.Ledger(c.Param("code"), period)
	if errors.Is(err, ledger.ErrUnknownAccount) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, "failed to build ledger", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account": acct,
		"period":  period,
		"ledger":  l,
	})
}

func (s *Server) incomeStatement(c *gin.Context) {
	period, ok := s.period(c)
	if !ok {
		return
	}
	is, err := s.books.IncomeStatement(period)
	if err != nil {
		s.fail(c, "failed to generate income statement", err)
		return
	}
	c.JSON(http.StatusOK, is)
}

func (s *Server) balanceSheet(c *gin.Context) {
	period, ok := s.period(c)
	if !ok {
		return
	}
	bs, err := s.books.BalanceSheet(period)
	if err != nil {
		s.fail(c, "failed to generate balance sheet", err)
		return
	}
	if !bs.Balanced() {
		s.logger.Warn("balance sheet does not balance",
			zap.Stringer("period", period),
			zap.String("difference", bs.Balance.StringFixed(2)))
	}
	c.JSON(http.StatusOK, gin.H{"balanced": bs.Balanced(), "balance_sheet": bs})
}

func (s *Server) trialBalance(c *gin.Context) {
	period, ok := s.period(c)
	if !ok {
		return
	}
	tb, err := s.books.TrialBalance(period)
	if err != nil {
		s.fail(c, "failed to generate trial balance", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"balanced": tb.Balanced(), "trial_balance": tb})
}
