// Package provision acquires the external resources a service needs (the
// secret store, the database pool, and the static-asset root) through a
// host-supplied factory.
//
// Acquisition is fail-fast: the first resource that cannot be obtained
// short-circuits the remaining requests and no partial resource set is ever
// returned. The database pool is used exactly once at provisioning time to
// run the fixed idempotent schema initialization batch; a failure there is
// fatal in the same way. The provisioner retains no reference to any
// resource after returning.
package provision
