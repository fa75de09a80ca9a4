package reconcile

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"path"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/feature/catalog/models"

	"go.uber.org/zap"
)

const stageImage = "image"

// Local attachment prefixes.
const (
	PublicFilesPrefix  = "/files/"
	PrivateFilesPrefix = "/private/files/"
)

// IsLocalFile reports whether ref points at a locally stored attachment.
func IsLocalFile(ref string) bool {
	return strings.HasPrefix(ref, PublicFilesPrefix) || strings.HasPrefix(ref, PrivateFilesPrefix)
}

func isRemoteURL(ref string) bool {
	for _, scheme := range []string{"http://", "https://", "ftp://"} {
		if strings.HasPrefix(strings.ToLower(ref), scheme) {
			return true
		}
	}
	return false
}

// syncImage attaches the item image to its remote product unless the product
// already carries an image with the same file name or source.
func (o *Orchestrator) syncImage(ctx context.Context, item *models.Item, run *reconcile.RunResult) error {
	if item.Image == "" || !item.IsSynced() {
		return nil
	}
	l := o.logger.With(zap.String("item_code", item.Code), zap.String("image", item.Image))

	var payload models.ImagePayload
	switch {
	case IsLocalFile(item.Image):
		if o.files == nil {
			l.Debug("No attachment store configured")
			return nil
		}
		name, data, err := o.files.Read(ctx, item.Image)
		if err != nil {
			o.skip(run, item.Code, stageImage, fmt.Errorf("failed to read image attachment: %w", err))
			return nil
		}
		if name == "" || len(data) == 0 {
			o.skip(run, item.Code, stageImage, reconcile.NewValidationError("image", "attachment %s is empty", item.Image))
			return nil
		}
		payload = models.ImagePayload{
			Attachment: base64.StdEncoding.EncodeToString(data),
			Filename:   name,
		}
	case isRemoteURL(item.Image):
		if o.prober != nil && !o.prober.IsImage(ctx, item.Image) {
			o.skip(run, item.Code, stageImage, reconcile.NewValidationError("image", "%s does not serve a supported image", item.Image))
			return nil
		}
		payload = models.ImagePayload{Src: item.Image}
	default:
		return nil
	}

	productID := *item.RemoteProductID
	existing, err := o.remote.ListProductImages(ctx, productID)
	if err != nil {
		return err
	}
	if hasImage(existing, payload) {
		return nil
	}
	if _, err := o.remote.AddProductImage(ctx, productID, payload); err != nil {
		return err
	}
	run.Record(reconcile.Action{Type: reconcile.ActionAddImage, Key: item.Code, RemoteID: productID})
	l.Info("Added remote product image", zap.Int64("remote_product_id", productID))
	return nil
}

func hasImage(existing []models.RemoteImage, img models.ImagePayload) bool {
	for _, e := range existing {
		if img.Filename != "" && imageFilename(e.Src) == img.Filename {
			return true
		}
		if img.Src != "" && e.Src == img.Src {
			return true
		}
	}
	return false
}

// imageFilename returns the last path segment of src without its query.
func imageFilename(src string) string {
	if u, err := url.Parse(src); err == nil && u.Path != "" {
		return path.Base(u.Path)
	}
	if i := strings.IndexByte(src, '?'); i >= 0 {
		src = src[:i]
	}
	return path.Base(src)
}
