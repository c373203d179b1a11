package services

import (
	portsrepo "github.com/cashbook-app/cashbook-sync/internal/core/ports/repositories"
	portssvc "github.com/cashbook-app/cashbook-sync/internal/core/ports/services"
	"github.com/cashbook-app/cashbook-sync/internal/platform/config"
	"github.com/cashbook-app/cashbook-sync/internal/utils"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gateways Gateways, telemetry *utils.PosthogClientWrapper) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Membership comes first since the sync service checks permissions
	// against it.
	container.Membership = NewMembershipService(gateways.Membership, repos.Cache)

	container.Sync = NewSyncService(
		gateways.Transactions,
		repos.Cache,
		container.Membership,
		telemetry,
		cfg.MutationTimeout,
	)

	return container
}

// Gateways bundles the remote backend clients the services are built on.
type Gateways struct {
	Transactions portssvc.TransactionGateway
	Membership   portssvc.MembershipGateway
}
