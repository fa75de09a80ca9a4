// Package utils provides small helpers shared by the catalog feature, such as the
// canonical text form of numeric attribute values.
package utils
