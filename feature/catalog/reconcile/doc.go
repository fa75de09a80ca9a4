// Package reconcile implements the two-way catalog sync between the ERP item
// store and the remote e-commerce catalog.
//
// The pull pass maps remote products onto templates, variants and standalone
// items through the Resolver, Matcher and Composer. The push pass projects local
// items onto outbound payloads with the Projector and writes returned remote ids
// back. Stock changes are pushed as quantity-only updates.
package reconcile
