package reconcile

import (
	"context"
	"strconv"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// DefaultStockUOM is the unit assigned to items created from remote products.
const DefaultStockUOM = "Nos"

// Composer maps remote products onto local items and local items onto outbound
// payloads. A Composer is bound to one repository, usually a transaction.
type Composer struct {
	repo      Repository
	resolver  *Resolver
	matcher   *Matcher
	projector *Projector
	touched   *reconcile.TouchedSet
	run       *reconcile.RunResult
	logger    *zap.Logger
}

// NewComposer creates a Composer recording into touched and run.
func NewComposer(repo Repository, touched *reconcile.TouchedSet, run *reconcile.RunResult, logger *zap.Logger) *Composer {
	return &Composer{
		repo:      repo,
		resolver:  NewResolver(repo, logger),
		matcher:   NewMatcher(repo, touched, logger),
		projector: NewProjector(repo),
		touched:   touched,
		run:       run,
		logger:    logger,
	}
}

// Inbound creates or updates the local items of one remote product: a template
// and one child per variant, or a single standalone item.
func (c *Composer) Inbound(ctx context.Context, p *models.RemoteProduct, s Settings) error {
	group, err := c.repo.EnsureItemGroup(ctx, p.ProductType)
	if err != nil {
		return err
	}
	supplier, err := c.repo.EnsureSupplier(ctx, p.Vendor)
	if err != nil {
		return err
	}

	base := models.Item{
		Name:            p.Title,
		Group:           group,
		Description:     p.BodyHTML,
		StockUOM:        DefaultStockUOM,
		Image:           p.ImageSrc(),
		DefaultSupplier: supplier,
		SyncEnabled:     true,
	}
	if base.Description == "" {
		base.Description = p.Title
	}

	if !p.HasVariants() {
		first := p.Variants[0]
		item := withVariantFields(base, &first)
		item.Code = strconv.FormatInt(p.ID, 10)
		cand := Candidate{ProductID: p.ID, VariantID: first.ID, Name: p.Title}
		_, err := c.upsert(ctx, cand, &item, s, &first)
		return err
	}

	refs := make([]AttributeRef, 0, len(p.Options))
	for _, opt := range p.Options {
		ref, err := c.resolver.Resolve(ctx, opt)
		if err != nil {
			return err
		}
		refs = append(refs, ref)
	}

	tmpl := withVariantFields(base, &p.Variants[0])
	tmpl.Code = strconv.FormatInt(p.ID, 10)
	tmpl.IsTemplate = true
	for i, ref := range refs {
		tmpl.Attributes = append(tmpl.Attributes, ref.TemplateRow(i+1))
	}
	saved, err := c.upsert(ctx, Candidate{ProductID: p.ID, Name: p.Title}, &tmpl, s, nil)
	if err != nil {
		return err
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		attrs, err := variantAttributes(refs, v)
		if err != nil {
			c.run.Skip(strconv.FormatInt(v.ID, 10), "pull", err)
			c.logger.Warn("Skipping remote variant",
				zap.Int64("remote_product_id", p.ID),
				zap.Int64("remote_variant_id", v.ID),
				zap.Error(err),
			)
			continue
		}

		child := withVariantFields(base, v)
		child.Code = strconv.FormatInt(v.ID, 10)
		child.Image = ""
		child.StockUOM = saved.StockUOM
		templateCode := saved.Code
		child.TemplateRef = &templateCode
		child.Attributes = attrs

		cand := Candidate{
			ProductID:  p.ID,
			VariantID:  v.ID,
			IsVariant:  true,
			Name:       p.Title,
			Attributes: child.Pairs(),
		}
		if _, err := c.upsert(ctx, cand, &child, s, v); err != nil {
			return err
		}
	}
	return nil
}

// upsert matches cand and creates, updates or links the local item. Prices are
// written for every non-template item that was created or updated.
func (c *Composer) upsert(ctx context.Context, cand Candidate, fresh *models.Item, s Settings, v *models.RemoteVariant) (*models.Item, error) {
	m, err := c.matcher.Match(ctx, cand)
	if err != nil {
		return nil, err
	}

	var item *models.Item
	switch m.Kind {
	case reconcile.MatchedVariantLink:
		c.run.Record(reconcile.Action{
			Type:     reconcile.ActionLinkVariant,
			Key:      m.Item.Code,
			RemoteID: cand.VariantID,
		})
		return m.Item, nil

	case reconcile.MatchedUpdate:
		item = m.Item
		if err := c.update(ctx, item, fresh, cand); err != nil {
			return nil, err
		}

	default:
		existing, err := c.repo.GetItem(ctx, fresh.Code)
		switch {
		case err == nil:
			item = existing
			if err := c.update(ctx, item, fresh, cand); err != nil {
				return nil, err
			}
		case isNotFound(err):
			fresh.SetRemoteIDs(cand.ProductID, cand.VariantID)
			if err := c.repo.CreateItem(ctx, fresh); err != nil {
				return nil, err
			}
			item = fresh
			c.touched.Add(item.Code)
			c.run.Record(reconcile.Action{
				Type:     reconcile.ActionCreateLocal,
				Key:      item.Code,
				RemoteID: cand.ProductID,
			})
			c.logger.Info("Created local item",
				zap.String("item_code", item.Code),
				zap.Int64("remote_product_id", cand.ProductID),
			)
		default:
			return nil, err
		}
	}

	if v != nil && !item.IsTemplate {
		if err := c.repo.UpsertPrice(ctx, item.Code, s.PriceList, v.Price); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// update copies the remote-owned fields of fresh onto item. The stock unit, the
// template reference and already assigned remote ids are kept.
func (c *Composer) update(ctx context.Context, item, fresh *models.Item, cand Candidate) error {
	item.Name = fresh.Name
	item.Group = fresh.Group
	if fresh.Description != "" {
		item.Description = fresh.Description
	}
	if item.StockUOM == "" {
		item.StockUOM = fresh.StockUOM
	}
	item.SKU = fresh.SKU
	item.NetWeight = fresh.NetWeight
	item.WeightUOM = fresh.WeightUOM
	if fresh.Image != "" {
		item.Image = fresh.Image
	}
	item.DefaultSupplier = fresh.DefaultSupplier
	item.IsTemplate = fresh.IsTemplate
	item.SyncEnabled = true
	item.Attributes = fresh.Attributes
	if !item.IsSynced() {
		item.SetRemoteIDs(cand.ProductID, cand.VariantID)
	}

	if err := c.repo.SaveItem(ctx, item); err != nil {
		return err
	}
	c.touched.Add(item.Code)
	c.run.Record(reconcile.Action{
		Type:     reconcile.ActionUpdateLocal,
		Key:      item.Code,
		RemoteID: cand.ProductID,
	})
	return nil
}

func withVariantFields(base models.Item, v *models.RemoteVariant) models.Item {
	base.SKU = v.SKU
	base.NetWeight = v.Weight
	base.WeightUOM = v.WeightUnit
	return base
}

// variantAttributes resolves the option values of v against refs, in option order.
func variantAttributes(refs []AttributeRef, v *models.RemoteVariant) ([]models.ItemAttribute, error) {
	values := v.OptionValues()
	attrs := make([]models.ItemAttribute, 0, len(refs))
	for i, ref := range refs {
		if i >= len(values) || values[i] == "" {
			return nil, reconcile.NewValidationError("option"+strconv.Itoa(i+1), "missing value for attribute %s", ref.Name)
		}
		value, err := ref.ResolveValue(values[i])
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, models.ItemAttribute{
			Position:  i + 1,
			Attribute: ref.Name,
			Value:     value,
		})
	}
	return attrs, nil
}
