package core

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stocklab.io/inventory-chat/internal/state"
)

type fakeGateway struct {
	mu sync.Mutex

	products  []state.Product
	suppliers []state.Supplier
	queryBody json.RawMessage

	productsErr  error
	suppliersErr error
	createErr    error
	queryErr     error

	productFetches  int
	supplierFetches int
	createCalls     int
	queryCalls      int

	lastDraft state.DraftProduct
}

func (f *fakeGateway) ListProducts(ctx context.Context) ([]state.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.productFetches++
	return f.products, f.productsErr
}

func (f *fakeGateway) ListSuppliers(ctx context.Context) ([]state.Supplier, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.supplierFetches++
	return f.suppliers, f.suppliersErr
}

func (f *fakeGateway) CreateProduct(ctx context.Context, draft state.DraftProduct) (state.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastDraft = draft
	if f.createErr != nil {
		return state.Product{}, f.createErr
	}
	created := state.Product{ID: 99, Name: draft.Name, Quantity: 5, Price: decimal.RequireFromString("9.99"), SupplierID: 1}
	f.products = append(f.products, created)
	return created, nil
}

func (f *fakeGateway) SubmitQuery(ctx context.Context, question string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queryCalls++
	return f.queryBody, f.queryErr
}

func newTestSynchronizer(gw *fakeGateway) (*Synchronizer, *state.State) {
	session := state.New()
	return NewSynchronizer(gw, session, zap.NewNop()), session
}

func TestRefreshReplacesBothCollections(t *testing.T) {
	gw := &fakeGateway{
		products:  []state.Product{{ID: 1, Name: "Widget"}},
		suppliers: []state.Supplier{{ID: 1, Name: "Acme"}, {ID: 2, Name: "Globex"}},
	}
	syncr, session := newTestSynchronizer(gw)

	require.NoError(t, syncr.Refresh(context.Background()))

	assert.Len(t, session.Products(), 1)
	assert.Len(t, session.Suppliers(), 2)
	assert.Equal(t, 1, gw.productFetches)
	assert.Equal(t, 1, gw.supplierFetches)
}

func TestRefreshAppliesNothingOnPartialFailure(t *testing.T) {
	tests := []struct {
		name         string
		productsErr  error
		suppliersErr error
	}{
		{"products fetch fails", errors.New("boom"), nil},
		{"suppliers fetch fails", nil, errors.New("boom")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{
				products:     []state.Product{{ID: 1, Name: "Widget"}},
				suppliers:    []state.Supplier{{ID: 1, Name: "Acme"}},
				productsErr:  tc.productsErr,
				suppliersErr: tc.suppliersErr,
			}
			syncr, session := newTestSynchronizer(gw)

			assert.Error(t, syncr.Refresh(context.Background()))
			assert.Empty(t, session.Products())
			assert.Empty(t, session.Suppliers())
			assert.Empty(t, session.Draft().SupplierID)
		})
	}
}

func TestRefreshSeedsDefaultSupplierOnlyWhenUnset(t *testing.T) {
	gw := &fakeGateway{suppliers: []state.Supplier{{ID: 7, Name: "Acme"}}}
	syncr, session := newTestSynchronizer(gw)

	require.NoError(t, syncr.Refresh(context.Background()))
	assert.Equal(t, "7", session.Draft().SupplierID)

	// A user selection mid-session survives later refreshes.
	draft := session.Draft()
	draft.SupplierID = "3"
	session.SetDraft(draft)

	require.NoError(t, syncr.Refresh(context.Background()))
	assert.Equal(t, "3", session.Draft().SupplierID)
}

func TestRefreshWithNoSuppliersLeavesDraftAlone(t *testing.T) {
	gw := &fakeGateway{}
	syncr, session := newTestSynchronizer(gw)

	require.NoError(t, syncr.Refresh(context.Background()))
	assert.Empty(t, session.Draft().SupplierID)
}

func TestCreateProductValidationBlocksGateway(t *testing.T) {
	tests := []struct {
		name  string
		draft state.DraftProduct
	}{
		{"missing name", state.DraftProduct{Price: "9.99", SupplierID: "1"}},
		{"missing price", state.DraftProduct{Name: "Widget", SupplierID: "1"}},
		{"missing supplier", state.DraftProduct{Name: "Widget", Price: "9.99"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{}
			syncr, session := newTestSynchronizer(gw)
			session.SetDraft(tc.draft)

			_, err := syncr.CreateProduct(context.Background())
			assert.ErrorIs(t, err, ErrDraftIncomplete)
			assert.Equal(t, 0, gw.createCalls)
			assert.Equal(t, tc.draft, session.Draft())
		})
	}
}

func TestCreateProductSuccess(t *testing.T) {
	gw := &fakeGateway{suppliers: []state.Supplier{{ID: 1, Name: "Acme"}}}
	syncr, session := newTestSynchronizer(gw)
	session.SetFormOpen(true)
	session.SetDraft(state.DraftProduct{Name: "Widget", Quantity: "5", Price: "9.99", SupplierID: "1"})

	created, err := syncr.CreateProduct(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Widget", created.Name)

	// Draft values cleared, supplier selection kept, form closed.
	draft := session.Draft()
	assert.Empty(t, draft.Name)
	assert.Empty(t, draft.Quantity)
	assert.Empty(t, draft.Price)
	assert.Equal(t, "1", draft.SupplierID)
	assert.False(t, session.FormOpen())

	// Exactly one create call and one refresh pair.
	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, 1, gw.productFetches)
	assert.Equal(t, 1, gw.supplierFetches)

	// The draft went over the wire with its raw form strings.
	assert.Equal(t, state.DraftProduct{Name: "Widget", Quantity: "5", Price: "9.99", SupplierID: "1"}, gw.lastDraft)

	// Bot confirmation names the created product.
	messages := session.Messages()
	require.NotEmpty(t, messages)
	last := messages[len(messages)-1]
	assert.Equal(t, state.RoleBot, last.Role)
	assert.Contains(t, last.Text, "Widget")
	assert.Contains(t, last.Text, "✅")
}

func TestCreateProductGatewayFailureLeavesDraftIntact(t *testing.T) {
	gw := &fakeGateway{createErr: errors.New("boom")}
	syncr, session := newTestSynchronizer(gw)
	session.SetFormOpen(true)
	draft := state.DraftProduct{Name: "Widget", Quantity: "5", Price: "9.99", SupplierID: "1"}
	session.SetDraft(draft)
	before := len(session.Messages())

	_, err := syncr.CreateProduct(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrDraftIncomplete)

	assert.Equal(t, draft, session.Draft())
	assert.True(t, session.FormOpen())
	assert.Len(t, session.Messages(), before)
	assert.Equal(t, 0, gw.productFetches)
}
