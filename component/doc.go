// Package component defines lifecycle-managed resource components and an
// ordered registry for them.
//
// Provisioned resources with a shutdown obligation (the database pool, the
// HTTP service) implement Component. The registry starts components in
// registration order and stops them in reverse, so the pool outlives the
// server that borrows it.
package component
