package reconcile

import (
	"context"
	"errors"
	"fmt"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// Candidate is a remote record presented for matching.
type Candidate struct {
	// ProductID is the remote product id.
	ProductID int64
	// VariantID is the remote variant id; zero for templates.
	VariantID int64
	// IsVariant marks records that become template children.
	IsVariant bool
	// Name is the remote title.
	Name string
	// Attributes are the resolved (attribute, value) pairs of a variant.
	Attributes []models.AttributePair
}

// Match is the result of matching a Candidate.
type Match struct {
	Kind reconcile.MatchKind
	Item *models.Item
}

// Matcher finds the local item that corresponds to a remote record.
type Matcher struct {
	repo    Repository
	touched *reconcile.TouchedSet
	logger  *zap.Logger
}

// NewMatcher creates a Matcher recording touched items into touched.
func NewMatcher(repo Repository, touched *reconcile.TouchedSet, logger *zap.Logger) *Matcher {
	return &Matcher{repo: repo, touched: touched, logger: logger}
}

// Match resolves c in order: remote id, exact name, adoption of an unlinked
// item, variant link by attribute set, plain update.
func (m *Matcher) Match(ctx context.Context, c Candidate) (Match, error) {
	item, err := m.byRemoteID(ctx, c)
	if err != nil {
		return Match{}, err
	}
	if item != nil {
		m.touched.Add(item.Code)
		return Match{Kind: reconcile.MatchedUpdate, Item: item}, nil
	}

	item, err = m.repo.FindByName(ctx, c.Name)
	if errors.Is(err, reconcile.ErrNotFound) {
		return Match{Kind: reconcile.Unmatched}, nil
	}
	if err != nil {
		return Match{}, err
	}
	if !c.IsVariant {
		// Templates and standalone items only ever match a non-variant item
		// that is unlinked or linked to the same remote product.
		if item, err = m.owner(ctx, item); err != nil || item == nil {
			return Match{Kind: reconcile.Unmatched}, err
		}
		if item.IsSynced() && *item.RemoteProductID != c.ProductID {
			m.logger.Info("Name already linked to another remote product, creating a new item",
				zap.String("item_code", item.Code),
				zap.Int64("linked_product_id", *item.RemoteProductID),
				zap.Int64("remote_product_id", c.ProductID),
			)
			return Match{Kind: reconcile.Unmatched}, nil
		}
	}

	if !item.IsSynced() {
		if err := m.repo.SetRemoteIDs(ctx, item.Code, c.ProductID, c.VariantID); err != nil {
			return Match{}, err
		}
		item.SetRemoteIDs(c.ProductID, c.VariantID)
		m.touched.Add(item.Code)
		m.logger.Info("Adopted local item by name",
			zap.String("item_code", item.Code),
			zap.Int64("remote_product_id", c.ProductID),
			zap.Int64("remote_variant_id", c.VariantID),
		)
		return Match{Kind: reconcile.MatchedUpdate, Item: item}, nil
	}

	if c.IsVariant && len(c.Attributes) > 0 && c.Attributes[0].Value != "" {
		return m.linkVariant(ctx, c)
	}

	m.touched.Add(item.Code)
	return Match{Kind: reconcile.MatchedUpdate, Item: item}, nil
}

func (m *Matcher) byRemoteID(ctx context.Context, c Candidate) (*models.Item, error) {
	if !c.IsVariant && c.ProductID != 0 {
		item, err := m.repo.FindByRemoteProductID(ctx, c.ProductID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, reconcile.ErrNotFound) {
			return nil, err
		}
	}
	if c.VariantID != 0 {
		item, err := m.repo.FindByRemoteVariantID(ctx, c.VariantID)
		if err == nil {
			return item, nil
		}
		if !errors.Is(err, reconcile.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}

// linkVariant searches the children of the candidate's own template for the
// single unlinked child whose attribute set equals the candidate's and links it.
func (m *Matcher) linkVariant(ctx context.Context, c Candidate) (Match, error) {
	tmpl, err := m.repo.FindByRemoteProductID(ctx, c.ProductID)
	if errors.Is(err, reconcile.ErrNotFound) {
		m.ambiguous(c, 0)
		return Match{Kind: reconcile.Unmatched}, nil
	}
	if err != nil {
		return Match{}, err
	}
	m.touched.Add(tmpl.Code)

	children, err := m.repo.ListChildren(ctx, tmpl.Code)
	if err != nil {
		return Match{}, err
	}
	var hits []models.Item
	for _, child := range children {
		if child.RemoteVariantID != nil {
			continue
		}
		if samePairs(child.Pairs(), c.Attributes) {
			hits = append(hits, child)
		}
	}
	if len(hits) != 1 {
		m.ambiguous(c, len(hits))
		return Match{Kind: reconcile.Unmatched}, nil
	}

	child := hits[0]
	if err := m.repo.SetRemoteIDs(ctx, child.Code, c.ProductID, c.VariantID); err != nil {
		return Match{}, err
	}
	child.SetRemoteIDs(c.ProductID, c.VariantID)
	m.touched.Add(child.Code)
	m.logger.Info("Linked local variant",
		zap.String("item_code", child.Code),
		zap.String("template", tmpl.Code),
		zap.Int64("remote_variant_id", c.VariantID),
	)
	return Match{Kind: reconcile.MatchedVariantLink, Item: &child}, nil
}

// owner returns the template of a variant hit, or the hit itself. A variant whose
// template is gone yields nil.
func (m *Matcher) owner(ctx context.Context, found *models.Item) (*models.Item, error) {
	if !found.IsVariant() {
		return found, nil
	}
	tmpl, err := m.repo.GetItem(ctx, *found.TemplateRef)
	if errors.Is(err, reconcile.ErrNotFound) {
		return nil, nil
	}
	return tmpl, err
}

func (m *Matcher) ambiguous(c Candidate, hits int) {
	fields := []zap.Field{
		zap.Error(fmt.Errorf("%w: %d candidates", reconcile.ErrAmbiguousMatch, hits)),
		zap.String("name", c.Name),
		zap.Int64("remote_variant_id", c.VariantID),
		zap.Any("attributes", c.Attributes),
	}
	if hits == 0 {
		m.logger.Debug("No local variant to link, creating a new item", fields...)
		return
	}
	m.logger.Warn("Variant not linked, creating a new item", fields...)
}

// samePairs reports whether a and b hold the same (attribute, value) pairs.
func samePairs(a, b []models.AttributePair) bool {
	if len(a) != len(b) {
		return false
	}
	want := make(map[models.AttributePair]int, len(b))
	for _, p := range b {
		want[p]++
	}
	for _, p := range a {
		if want[p] == 0 {
			return false
		}
		want[p]--
	}
	return true
}
