package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/dto"
	"github.com/wekeepgrowing/gov-budget-request-form/internal/domain/policy"
)

func TestTotalFollowsItemMutations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, policy.Default())
	req := f.createRequest(t)

	first := f.addItem(t, req.ID, "20000")
	second := f.addItem(t, req.ID, "5000")
	assertAmount(t, "25000", f.reload(t, req.ID).TotalAmount)

	_, err := f.items.Update(ctx, first.ID, dto.UpdateBudgetItemInput{TotalCost: dto.Some(amount("7500"))})
	require.NoError(t, err)
	assertAmount(t, "12500", f.reload(t, req.ID).TotalAmount)

	ok, err := f.items.Delete(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assertAmount(t, "7500", f.reload(t, req.ID).TotalAmount)

	ok, err = f.items.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, f.reload(t, req.ID).TotalAmount.IsZero())
}

func TestTotalMatchesItemSumAfterEveryStep(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, policy.Default())
	req := f.createRequest(t)

	assertInvariant := func() {
		t.Helper()
		items, err := f.items.ListByRequest(ctx, req.ID)
		require.NoError(t, err)
		sum := amount("0")
		for _, item := range items {
			sum = sum.Add(item.TotalCost)
		}
		assertAmount(t, sum.String(), f.reload(t, req.ID).TotalAmount)
	}

	a := f.addItem(t, req.ID, "0.10")
	assertInvariant()
	b := f.addItem(t, req.ID, "0.20")
	assertInvariant()
	assertAmount(t, "0.30", f.reload(t, req.ID).TotalAmount)

	qty := 3
	_, err := f.items.Update(ctx, a.ID, dto.UpdateBudgetItemInput{Quantity: dto.Some(qty)})
	require.NoError(t, err)
	assertInvariant()

	_, err = f.items.Update(ctx, b.ID, dto.UpdateBudgetItemInput{UnitCost: dto.Some(amount("1234.56"))})
	require.NoError(t, err)
	assertInvariant()

	f.addItem(t, req.ID, "99999.99")
	assertInvariant()

	_, err = f.items.Delete(ctx, a.ID)
	require.NoError(t, err)
	assertInvariant()
}

func TestRecalculateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, policy.Default())
	req := f.createRequest(t)
	f.addItem(t, req.ID, "150.25")
	f.addItem(t, req.ID, "49.75")

	for i := 0; i < 3; i++ {
		got, err := f.requests.RecalculateTotal(ctx, req.ID)
		require.NoError(t, err)
		assertAmount(t, "200", got.TotalAmount)
	}
}

func TestConcurrentItemCreatesKeepTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, policy.Default())
	req := f.createRequest(t)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cost := amount("10.05")
			_, err := f.items.Create(ctx, req.ID, dto.CreateBudgetItemInput{
				Category:        "supplies",
				ItemDescription: "Paper",
				UnitCost:        &cost,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assertAmount(t, "201", f.reload(t, req.ID).TotalAmount)
}
