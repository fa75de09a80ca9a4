// Package models defines the catalog records on both sides of the sync.
//
// Local records (Item, ItemAttribute, AttributeDefinition, AttributeValue,
// PriceEntry, StockLevel, ItemGroup, Supplier, SyncState) are GORM models of the
// ERP schema. Remote records (RemoteProduct, RemoteVariant, RemoteOption,
// RemoteImage) mirror the platform's JSON, and the Outbound* types are the
// payloads the sync sends back.
//
// Remote records are validated at the boundary with go-playground/validator
// (ValidateRemoteProduct); a failing product becomes a ValidationError and is
// skipped by the pull pass.
package models
