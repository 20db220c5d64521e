// Package variants reconciles a product's variants with its options.
//
// The service computes variant drift from either the stored options or an
// editor's unsaved option state, and keeps the result in an editing session.
// Admins can decline pending variants, keep variants marked for deletion and
// override fields of pending variants before committing. A commit creates
// every remaining pending variant and deletes every remaining marked variant
// through the gorm store; partial failures leave only the failed items in the
// session. Commit results are archived as JSON in object storage.
//
// # Routes
//
//   - GET    /products/:id/variants
//   - GET    /products/:id/options
//   - POST   /products/:id/drift
//   - GET    /products/:id/drift/reports
//   - GET    /products/:id/drift/reports/:name
//   - GET    /drift/:session
//   - DELETE /drift/:session/create/:variantId
//   - PATCH  /drift/:session/create/:variantId
//   - DELETE /drift/:session/delete/:variantId
//   - POST   /drift/:session/commit
package variants
