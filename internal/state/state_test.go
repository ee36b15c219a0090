package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeedsGreetingAndDefaultSort(t *testing.T) {
	s := New()

	messages := s.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, RoleBot, messages[0].Role)
	assert.Equal(t, Greeting, messages[0].Text)
	assert.NotEmpty(t, messages[0].ID)

	assert.Equal(t, SortConfig{Key: SortByID, Direction: Ascending}, s.Sort())
	assert.False(t, s.Pending())
	assert.False(t, s.FormOpen())
}

func TestAppendMessagePreservesOrder(t *testing.T) {
	s := New()
	s.AppendMessage(RoleUser, "first")
	s.AppendMessage(RoleBot, "second")

	messages := s.Messages()
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[1].Text)
	assert.Equal(t, "second", messages[2].Text)
}

func TestClearMessagesReseedsGreeting(t *testing.T) {
	s := New()
	s.AppendMessage(RoleUser, "hello")
	s.ClearMessages()

	messages := s.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, Greeting, messages[0].Text)
}

func TestResetDraftValuesKeepsSupplier(t *testing.T) {
	s := New()
	s.SetDraft(DraftProduct{Name: "Widget", Quantity: "5", Price: "9.99", SupplierID: "2"})
	s.ResetDraftValues()

	assert.Equal(t, DraftProduct{SupplierID: "2"}, s.Draft())
}

func TestSeedDraftSupplierIsGated(t *testing.T) {
	s := New()

	s.SeedDraftSupplier("1")
	assert.Equal(t, "1", s.Draft().SupplierID)

	s.SeedDraftSupplier("2")
	assert.Equal(t, "1", s.Draft().SupplierID)
}

func TestReplaceCatalogSwapsWholesale(t *testing.T) {
	s := New()
	s.ReplaceCatalog([]Product{{ID: 1}}, []Supplier{{ID: 1}})
	s.ReplaceCatalog([]Product{{ID: 2}, {ID: 3}}, nil)

	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, int64(2), products[0].ID)
	assert.Empty(t, s.Suppliers())
}
