package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"stocklab.io/inventory-chat/internal/state"
)

// Gateway is the remote inventory API surface the core depends on. The
// concrete client lives in internal/gateway.
type Gateway interface {
	ListProducts(ctx context.Context) ([]state.Product, error)
	ListSuppliers(ctx context.Context) ([]state.Supplier, error)
	CreateProduct(ctx context.Context, draft state.DraftProduct) (state.Product, error)
	SubmitQuery(ctx context.Context, question string) (json.RawMessage, error)
}

// ErrDraftIncomplete blocks a creation before any network call is made.
var ErrDraftIncomplete = errors.New("please fill all fields and ensure a supplier is selected")

// Synchronizer keeps the product and supplier collections, and the creation
// form, consistent with the backend.
type Synchronizer struct {
	gateway Gateway
	session *state.State
	log     *zap.Logger
}

func NewSynchronizer(gw Gateway, session *state.State, log *zap.Logger) *Synchronizer {
	return &Synchronizer{
		gateway: gw,
		session: session,
		log:     log,
	}
}

// Refresh fetches products and suppliers in parallel and replaces both
// collections wholesale once both requests succeeded. If either fails
// nothing is applied, so the table never mixes fresh and stale halves.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	var (
		wg        sync.WaitGroup
		products  []state.Product
		suppliers []state.Supplier
		prodErr   error
		supErr    error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		products, prodErr = s.gateway.ListProducts(ctx)
	}()
	go func() {
		defer wg.Done()
		suppliers, supErr = s.gateway.ListSuppliers(ctx)
	}()
	wg.Wait()

	if prodErr != nil {
		return fmt.Errorf("failed to fetch products: %w", prodErr)
	}
	if supErr != nil {
		return fmt.Errorf("failed to fetch suppliers: %w", supErr)
	}

	s.session.ReplaceCatalog(products, suppliers)

	if len(suppliers) > 0 {
		s.session.SeedDraftSupplier(strconv.FormatInt(suppliers[0].ID, 10))
	}
	return nil
}

// CreateProduct submits the current draft. Missing name, price or supplier
// blocks the call entirely. On success the draft values are cleared (the
// supplier selection survives), the form closes, both collections are
// refreshed and a bot confirmation is appended to the transcript.
func (s *Synchronizer) CreateProduct(ctx context.Context) (state.Product, error) {
	draft := s.session.Draft()
	if draft.Name == "" || draft.Price == "" || draft.SupplierID == "" {
		return state.Product{}, ErrDraftIncomplete
	}

	created, err := s.gateway.CreateProduct(ctx, draft)
	if err != nil {
		// Leave the form open and populated; the user retries.
		return state.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	s.session.ResetDraftValues()
	s.session.SetFormOpen(false)

	if err := s.Refresh(ctx); err != nil {
		s.log.Warn("refresh after create failed", zap.Error(err))
	}

	s.session.AppendMessage(state.RoleBot, fmt.Sprintf("✅ Added %q to inventory.", draft.Name))
	return created, nil
}
