package remote

// Config holds the platform endpoint and credentials.
type Config struct {
	// ShopURL is the shop base URL (https://example.myshopify.com).
	ShopURL string `mapstructure:"shop_url" default:""`
	// AccessToken is sent in the X-Shopify-Access-Token header.
	AccessToken string `mapstructure:"access_token" default:""`
	// APIVersion is the dated Admin API version.
	APIVersion string `mapstructure:"api_version" default:"2024-01"`
	// TimeoutSeconds bounds every HTTP call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// PageSize is the product page size (platform maximum 250).
	PageSize int `mapstructure:"page_size" default:"250"`
}

// IsConfigured reports whether a shop and token are set.
func (c Config) IsConfigured() bool {
	return c.ShopURL != "" && c.AccessToken != ""
}
