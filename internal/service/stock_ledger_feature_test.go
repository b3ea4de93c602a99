package service_test

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"go-inventory-api/internal/apperror"
	"go-inventory-api/internal/model"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
)

type ledgerTestContext struct {
	t       *testing.T
	f       *fixture
	product *model.Product
	entry   *model.StockHistory
	err     error
}

func (c *ledgerTestContext) reset() {
	c.f = newFixture(c.t)
	c.product = nil
	c.entry = nil
	c.err = nil
}

func (c *ledgerTestContext) aProductWithQuantity(sku string, quantity int) error {
	c.product = c.f.createProduct(c.t, sku, quantity)
	return nil
}

func (c *ledgerTestContext) iRecordAStockChangeWithReason(amount int, reason string) error {
	c.entry, c.err = c.f.record(c.product.ID, amount, reason)
	return nil
}

func (c *ledgerTestContext) iRecordAStockChangeForAnUnknownProduct(amount int) error {
	c.entry, c.err = c.f.record(uuid.New(), amount, "")
	return nil
}

func (c *ledgerTestContext) iRecordTheStockChanges(list string) error {
	for _, raw := range strings.Split(list, ",") {
		amount, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		c.entry, c.err = c.f.record(c.product.ID, amount, "batch")
	}
	return nil
}

func (c *ledgerTestContext) theChangeIsAccepted() error {
	if c.err != nil {
		return fmt.Errorf("expected the change to be accepted, got %v", c.err)
	}
	return nil
}

func (c *ledgerTestContext) theChangeIsRejectedAs(kind string) error {
	if c.err == nil {
		return errors.New("expected the change to be rejected but it was accepted")
	}
	if got := apperror.KindOf(c.err).String(); got != kind {
		return fmt.Errorf("expected %s, got %s (%v)", kind, got, c.err)
	}
	return nil
}

func (c *ledgerTestContext) theErrorMessageContains(substring string) error {
	if c.err == nil || !strings.Contains(c.err.Error(), substring) {
		return fmt.Errorf("expected error containing %q, got %v", substring, c.err)
	}
	return nil
}

func (c *ledgerTestContext) theProductQuantityIs(quantity int) error {
	p, err := c.f.products.FindByID(context.Background(), c.product.ID)
	if err != nil {
		return err
	}
	if p.Quantity != quantity {
		return fmt.Errorf("expected quantity %d, got %d", quantity, p.Quantity)
	}
	return nil
}

func (c *ledgerTestContext) theProductHasLedgerEntries(count int) error {
	n, err := c.f.history.CountByProduct(context.Background(), c.product.ID)
	if err != nil {
		return err
	}
	if int(n) != count {
		return fmt.Errorf("expected %d ledger entries, got %d", count, n)
	}
	return nil
}

func (c *ledgerTestContext) theLastEntryMovedTheQuantityFromTo(from, to int) error {
	if c.entry == nil {
		return errors.New("no entry was recorded")
	}
	if c.entry.PreviousQuantity != from || c.entry.NewQuantity != to {
		return fmt.Errorf("expected %d -> %d, got %d -> %d", from, to, c.entry.PreviousQuantity, c.entry.NewQuantity)
	}
	return nil
}

func initializeLedgerScenario(t *testing.T) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := &ledgerTestContext{t: t}

		ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		// Given steps
		ctx.Step(`^a product "([^"]*)" with quantity (\d+)$`, tc.aProductWithQuantity)

		// When steps
		ctx.Step(`^I record a stock change of (-?\d+) with reason "([^"]*)"$`, tc.iRecordAStockChangeWithReason)
		ctx.Step(`^I record a stock change of (-?\d+) for an unknown product$`, tc.iRecordAStockChangeForAnUnknownProduct)
		ctx.Step(`^I record the stock changes ([-\d,]+)$`, tc.iRecordTheStockChanges)

		// Then steps
		ctx.Step(`^the change is accepted$`, tc.theChangeIsAccepted)
		ctx.Step(`^the change is rejected as "([^"]*)"$`, tc.theChangeIsRejectedAs)
		ctx.Step(`^the error message contains "([^"]*)"$`, tc.theErrorMessageContains)
		ctx.Step(`^the product quantity is (\d+)$`, tc.theProductQuantityIs)
		ctx.Step(`^the product has (\d+) ledger entries$`, tc.theProductHasLedgerEntries)
		ctx.Step(`^the last entry moved the quantity from (\d+) to (\d+)$`, tc.theLastEntryMovedTheQuantityFromTo)
	}
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeLedgerScenario(t),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features/stock_ledger.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
