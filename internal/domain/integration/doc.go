// Package integration contains the domain model for marketplace
// synchronization: integration credentials, the Marketplace port consumed
// by sync jobs, remote-mirror entities reconciled by upsert, and the
// mapping between the remote and local order status vocabularies.
//
// Concrete marketplace adapters (Trendyol) live in the infrastructure
// layer; sync orchestration lives in the application layer.
package integration
