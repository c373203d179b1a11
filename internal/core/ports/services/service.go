package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Sync       SyncSvcFacade
	Membership MembershipSvcFacade
}
