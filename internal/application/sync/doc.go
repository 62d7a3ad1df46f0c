// Package sync orchestrates marketplace synchronization jobs: paginated
// fetching with retry and pacing, batch reconciliation into local mirror
// collections, category tree import, and the rolling-window order sync.
//
// Jobs are triggered externally (HTTP or scheduler), read credentials
// through the domain repositories, and talk to the marketplace only through
// the integration.Marketplace port.
package sync
