package reconcile_test

import (
	"context"
	"testing"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"
	catalog "catalog-sync/feature/catalog/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMatcher(f *fixture) (*catalog.Matcher, *reconcile.TouchedSet) {
	touched := reconcile.NewTouchedSet()
	return catalog.NewMatcher(f.store, touched, zap.NewNop()), touched
}

func seedMugTemplate(t *testing.T, f *fixture) {
	f.createItem(t, models.Item{
		Code: "MUG", Name: "Mug", IsTemplate: true, SyncEnabled: true,
		RemoteProductID: ptr(int64(900)),
		Attributes:      []models.ItemAttribute{{Position: 1, Attribute: "Color"}, {Position: 2, Attribute: "Size"}},
	})
	f.createItem(t, models.Item{
		Code: "MUG-RED-L", Name: "Mug", TemplateRef: ptr("MUG"),
		Attributes: []models.ItemAttribute{
			{Position: 1, Attribute: "Color", Value: "Red"},
			{Position: 2, Attribute: "Size", Value: "L"},
		},
	})
	f.createItem(t, models.Item{
		Code: "MUG-RED-S", Name: "Mug", TemplateRef: ptr("MUG"),
		Attributes: []models.ItemAttribute{
			{Position: 1, Attribute: "Color", Value: "Red"},
			{Position: 2, Attribute: "Size", Value: "S"},
		},
	})
}

func TestMatcher_ByRemoteID(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seedMugTemplate(t, f)
	m, touched := newMatcher(f)

	res, err := m.Match(ctx, catalog.Candidate{ProductID: 900, Name: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.MatchedUpdate, res.Kind)
	assert.Equal(t, "MUG", res.Item.Code)
	assert.True(t, touched.Has("MUG"))
}

func TestMatcher_Unmatched(t *testing.T) {
	f := setup(t)
	m, touched := newMatcher(f)

	res, err := m.Match(context.Background(), catalog.Candidate{ProductID: 1, VariantID: 2, Name: "Nothing"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Unmatched, res.Kind)
	assert.Nil(t, res.Item)
	assert.Zero(t, touched.Len())
}

func TestMatcher_AdoptsUnlinkedItemByName(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.createItem(t, models.Item{Code: "LAMP-01", Name: "Lamp", SyncEnabled: true})
	m, touched := newMatcher(f)

	res, err := m.Match(ctx, catalog.Candidate{ProductID: 300, VariantID: 301, Name: "Lamp"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.MatchedUpdate, res.Kind)
	assert.True(t, touched.Has("LAMP-01"))

	stored := f.item(t, "LAMP-01")
	require.NotNil(t, stored.RemoteProductID)
	assert.Equal(t, int64(300), *stored.RemoteProductID)
	assert.Equal(t, int64(301), *stored.RemoteVariantID)
}

func TestMatcher_LinksVariantWithExactAttributeSet(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	seedMugTemplate(t, f)
	m, touched := newMatcher(f)

	res, err := m.Match(ctx, catalog.Candidate{
		ProductID: 900, VariantID: 902, IsVariant: true, Name: "Mug",
		Attributes: []models.AttributePair{{Attribute: "Color", Value: "Red"}, {Attribute: "Size", Value: "S"}},
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.MatchedVariantLink, res.Kind)
	assert.Equal(t, "MUG-RED-S", res.Item.Code)
	assert.True(t, touched.Has("MUG"))
	assert.True(t, touched.Has("MUG-RED-S"))

	stored := f.item(t, "MUG-RED-S")
	assert.Equal(t, int64(902), *stored.RemoteVariantID)
	assert.Nil(t, f.item(t, "MUG-RED-L").RemoteVariantID)
}

func TestMatcher_SubsetAttributesDoNotLink(t *testing.T) {
	f := setup(t)
	seedMugTemplate(t, f)
	m, _ := newMatcher(f)

	// Both children carry Color=Red, but neither has exactly {Color=Red}.
	res, err := m.Match(context.Background(), catalog.Candidate{
		ProductID: 900, VariantID: 903, IsVariant: true, Name: "Mug",
		Attributes: []models.AttributePair{{Attribute: "Color", Value: "Red"}},
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Unmatched, res.Kind)
	assert.Nil(t, f.item(t, "MUG-RED-L").RemoteVariantID)
	assert.Nil(t, f.item(t, "MUG-RED-S").RemoteVariantID)
}

func TestMatcher_AmbiguousVariantsAreNotLinked(t *testing.T) {
	f := setup(t)
	seedMugTemplate(t, f)
	f.createItem(t, models.Item{
		Code: "MUG-RED-S2", Name: "Mug", TemplateRef: ptr("MUG"),
		Attributes: []models.ItemAttribute{
			{Position: 1, Attribute: "Color", Value: "Red"},
			{Position: 2, Attribute: "Size", Value: "S"},
		},
	})
	m, _ := newMatcher(f)

	res, err := m.Match(context.Background(), catalog.Candidate{
		ProductID: 900, VariantID: 904, IsVariant: true, Name: "Mug",
		Attributes: []models.AttributePair{{Attribute: "Size", Value: "S"}, {Attribute: "Color", Value: "Red"}},
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Unmatched, res.Kind)
}

func TestMatcher_NameLinkedToAnotherProductIsNotReused(t *testing.T) {
	f := setup(t)
	seedMugTemplate(t, f)
	m, touched := newMatcher(f)

	// Whichever "Mug" sorts first, the hit resolves to MUG, linked to product 900.
	res, err := m.Match(context.Background(), catalog.Candidate{ProductID: 950, Name: "Mug"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Unmatched, res.Kind)
	assert.Zero(t, touched.Len())
	assert.Equal(t, int64(900), *f.item(t, "MUG").RemoteProductID)
}

func TestMatcher_VariantNameHitResolvesToTemplate(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	f.createItem(t, models.Item{
		Code: "SHIRT", Name: "Shirt", IsTemplate: true, SyncEnabled: true,
		Attributes: []models.ItemAttribute{{Position: 1, Attribute: "Size"}},
	})
	f.createItem(t, models.Item{
		Code: "1-SHIRT-S", Name: "Shirt", TemplateRef: ptr("SHIRT"),
		Attributes: []models.ItemAttribute{{Position: 1, Attribute: "Size", Value: "S"}},
	})
	m, _ := newMatcher(f)

	res, err := m.Match(ctx, catalog.Candidate{ProductID: 700, Name: "Shirt"})
	require.NoError(t, err)
	assert.Equal(t, reconcile.MatchedUpdate, res.Kind)
	assert.Equal(t, "SHIRT", res.Item.Code)
	assert.Equal(t, int64(700), *f.item(t, "SHIRT").RemoteProductID)
	assert.Nil(t, f.item(t, "1-SHIRT-S").RemoteProductID)
}

func TestMatcher_LinkedChildIsNotRelinked(t *testing.T) {
	f := setup(t)
	seedMugTemplate(t, f)
	require.NoError(t, f.store.SetRemoteIDs(context.Background(), "MUG-RED-S", 900, 902))
	m, _ := newMatcher(f)

	res, err := m.Match(context.Background(), catalog.Candidate{
		ProductID: 900, VariantID: 905, IsVariant: true, Name: "Mug",
		Attributes: []models.AttributePair{{Attribute: "Color", Value: "Red"}, {Attribute: "Size", Value: "S"}},
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.Unmatched, res.Kind)
	assert.Equal(t, int64(902), *f.item(t, "MUG-RED-S").RemoteVariantID)
}
