package reconcile

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

// Abbreviation derives the stored abbreviation of an attribute value: the value
// itself when it contains a digit, otherwise its first three characters.
func Abbreviation(value string) string {
	for _, r := range value {
		if unicode.IsDigit(r) {
			return value
		}
	}
	runes := []rune(value)
	if len(runes) > 3 {
		return string(runes[:3])
	}
	return value
}

// AttributeRef is a resolved attribute definition.
type AttributeRef struct {
	Name      string
	Numeric   bool
	From      float64
	To        float64
	Increment float64

	def *models.AttributeDefinition
}

// TemplateRow returns the template attribute row for position pos (1-based).
func (r AttributeRef) TemplateRow(pos int) models.ItemAttribute {
	row := models.ItemAttribute{Position: pos, Attribute: r.Name}
	if r.Numeric {
		row.Numeric = true
		row.From, row.To, row.Increment = r.From, r.To, r.Increment
	}
	return row
}

// Resolver maps remote option axes onto local attribute definitions.
type Resolver struct {
	repo   Repository
	logger *zap.Logger
}

// NewResolver creates a Resolver.
func NewResolver(repo Repository, logger *zap.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve returns the definition for a remote option, creating it when unknown and
// merging unseen values into an existing named-value definition. Numeric
// definitions are returned unchanged.
func (r *Resolver) Resolve(ctx context.Context, opt models.RemoteOption) (AttributeRef, error) {
	def, err := r.repo.GetAttributeDefinition(ctx, opt.Name)
	switch {
	case errors.Is(err, reconcile.ErrNotFound):
		def = &models.AttributeDefinition{Name: opt.Name}
		mergeValues(def, opt.Values)
		if err := r.repo.SaveAttributeDefinition(ctx, def); err != nil {
			return AttributeRef{}, err
		}
		r.logger.Info("Created attribute", zap.String("attribute", def.Name), zap.Int("values", len(def.Values)))
	case err != nil:
		return AttributeRef{}, fmt.Errorf("failed to load attribute %s: %w", opt.Name, err)
	case def.Numeric:
		// Ranges are owned by the ERP.
	default:
		if added := mergeValues(def, opt.Values); added > 0 {
			if err := r.repo.SaveAttributeDefinition(ctx, def); err != nil {
				return AttributeRef{}, err
			}
			r.logger.Debug("Extended attribute", zap.String("attribute", def.Name), zap.Int("added", added))
		}
	}

	return AttributeRef{
		Name:      def.Name,
		Numeric:   def.Numeric,
		From:      def.From,
		To:        def.To,
		Increment: def.Increment,
		def:       def,
	}, nil
}

// mergeValues appends every raw value that matches no stored value or abbreviation.
func mergeValues(def *models.AttributeDefinition, raw []string) int {
	added := 0
	for _, v := range raw {
		if _, ok := def.Lookup(v); ok {
			continue
		}
		def.Values = append(def.Values, models.AttributeValue{Value: v, Abbr: Abbreviation(v)})
		added++
	}
	return added
}

// ResolveValue maps a raw variant option value onto the canonical stored value.
func (r AttributeRef) ResolveValue(raw string) (string, error) {
	if r.Numeric {
		n, ok := utils.ParseNumber(raw)
		if !ok {
			return "", reconcile.NewValidationError(r.Name, "unresolvable numeric attribute abbreviation %q", raw)
		}
		return utils.FormatNumber(n), nil
	}
	if r.def != nil {
		if v, ok := r.def.Lookup(raw); ok {
			return v, nil
		}
	}
	return "", reconcile.NewValidationError(r.Name, "unknown attribute value %q", raw)
}
