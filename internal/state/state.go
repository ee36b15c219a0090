// Package state holds the single mutable session container shared by the
// synchronizer, the chat controller and the UI. Lifetime is the process;
// nothing is persisted.
package state

import (
	"sync"

	"github.com/google/uuid"
)

// Greeting seeds the transcript on startup and after a clear.
const Greeting = "Hello! I am your inventory assistant. Ask me anything about your stock."

// State is passed by reference to every component that reads or mutates
// session data. Bubble Tea commands run off the render goroutine, so access
// is serialized here rather than by the callers.
type State struct {
	mu        sync.RWMutex
	products  []Product
	suppliers []Supplier
	messages  []ChatMessage
	draft     DraftProduct
	sort      SortConfig
	pending   bool
	formOpen  bool
}

func New() *State {
	return &State{
		messages: []ChatMessage{seedMessage()},
		sort:     SortConfig{Key: SortByID, Direction: Ascending},
	}
}

func seedMessage() ChatMessage {
	return ChatMessage{ID: uuid.NewString(), Role: RoleBot, Text: Greeting}
}

func (s *State) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *State) Suppliers() []Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Supplier, len(s.suppliers))
	copy(out, s.suppliers)
	return out
}

// ReplaceCatalog swaps in both collections wholesale. Partial merges never
// happen; the caller only invokes this after both fetches succeeded.
func (s *State) ReplaceCatalog(products []Product, suppliers []Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.suppliers = suppliers
}

func (s *State) Messages() []ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *State) AppendMessage(role Role, text string) ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := ChatMessage{ID: uuid.NewString(), Role: role, Text: text}
	s.messages = append(s.messages, msg)
	return msg
}

// ClearMessages resets the transcript to the seeded greeting.
func (s *State) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = []ChatMessage{seedMessage()}
}

func (s *State) Draft() DraftProduct {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft
}

func (s *State) SetDraft(d DraftProduct) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

// ResetDraftValues clears name, quantity and price but keeps the selected
// supplier, so consecutive creations reuse it.
func (s *State) ResetDraftValues() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Name = ""
	s.draft.Quantity = ""
	s.draft.Price = ""
}

// SeedDraftSupplier sets the draft supplier only when none is selected yet,
// so a chat-triggered refresh cannot clobber an in-progress selection.
func (s *State) SeedDraftSupplier(supplierID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.draft.SupplierID == "" {
		s.draft.SupplierID = supplierID
	}
}

func (s *State) Sort() SortConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sort
}

func (s *State) ToggleSort(key SortKey) SortConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = s.sort.Toggle(key)
	return s.sort
}

func (s *State) Pending() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pending
}

func (s *State) SetPending(pending bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = pending
}

func (s *State) FormOpen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.formOpen
}

func (s *State) SetFormOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.formOpen = open
}
