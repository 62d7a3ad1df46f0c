package integration

// ---------------------------------------------------------------------------
// RemoteOrderStatus
// ---------------------------------------------------------------------------

// RemoteOrderStatus is the order status vocabulary used by the marketplace
type RemoteOrderStatus string

const (
	RemoteOrderStatusCreated           RemoteOrderStatus = "Created"
	RemoteOrderStatusPicking           RemoteOrderStatus = "Picking"
	RemoteOrderStatusInvoiced          RemoteOrderStatus = "Invoiced"
	RemoteOrderStatusShipped           RemoteOrderStatus = "Shipped"
	RemoteOrderStatusDelivered         RemoteOrderStatus = "Delivered"
	RemoteOrderStatusUnDelivered       RemoteOrderStatus = "UnDelivered"
	RemoteOrderStatusCancelled         RemoteOrderStatus = "Cancelled"
	RemoteOrderStatusReturned          RemoteOrderStatus = "Returned"
	RemoteOrderStatusRepack            RemoteOrderStatus = "Repack"
	RemoteOrderStatusUnSupplied        RemoteOrderStatus = "UnSupplied"
	RemoteOrderStatusAtCollectionPoint RemoteOrderStatus = "AtCollectionPoint"
)

// IsValid returns true if the remote status is one the marketplace documents
func (s RemoteOrderStatus) IsValid() bool {
	switch s {
	case RemoteOrderStatusCreated, RemoteOrderStatusPicking,
		RemoteOrderStatusInvoiced, RemoteOrderStatusShipped,
		RemoteOrderStatusDelivered, RemoteOrderStatusUnDelivered,
		RemoteOrderStatusCancelled, RemoteOrderStatusReturned,
		RemoteOrderStatusRepack, RemoteOrderStatusUnSupplied,
		RemoteOrderStatusAtCollectionPoint:
		return true
	default:
		return false
	}
}

// String returns the string representation of RemoteOrderStatus
func (s RemoteOrderStatus) String() string {
	return string(s)
}

// OrderSyncStatuses is the status allow-list sent with order page requests.
// Statuses outside this list (Repack variants the marketplace has retired,
// collection-point states) are not requested during routine sync.
var OrderSyncStatuses = []RemoteOrderStatus{
	RemoteOrderStatusCreated,
	RemoteOrderStatusPicking,
	RemoteOrderStatusInvoiced,
	RemoteOrderStatusShipped,
	RemoteOrderStatusDelivered,
	RemoteOrderStatusCancelled,
	RemoteOrderStatusUnDelivered,
	RemoteOrderStatusReturned,
	RemoteOrderStatusRepack,
	RemoteOrderStatusUnSupplied,
}

// ---------------------------------------------------------------------------
// LocalOrderStatus
// ---------------------------------------------------------------------------

// LocalOrderStatus is the order status vocabulary used inside this system
type LocalOrderStatus string

const (
	LocalOrderStatusNew             LocalOrderStatus = "NEW"
	LocalOrderStatusPreparing       LocalOrderStatus = "PREPARING"
	LocalOrderStatusInvoiced        LocalOrderStatus = "INVOICED"
	LocalOrderStatusInTransit       LocalOrderStatus = "IN_TRANSIT"
	LocalOrderStatusDelivered       LocalOrderStatus = "DELIVERED"
	LocalOrderStatusDeliveryProblem LocalOrderStatus = "DELIVERY_PROBLEM"
	LocalOrderStatusCancelled       LocalOrderStatus = "CANCELLED"
	LocalOrderStatusReturned        LocalOrderStatus = "RETURNED"
	LocalOrderStatusUnknown         LocalOrderStatus = "UNKNOWN"
)

// IsValid returns true if the local status is valid
func (s LocalOrderStatus) IsValid() bool {
	switch s {
	case LocalOrderStatusNew, LocalOrderStatusPreparing,
		LocalOrderStatusInvoiced, LocalOrderStatusInTransit,
		LocalOrderStatusDelivered, LocalOrderStatusDeliveryProblem,
		LocalOrderStatusCancelled, LocalOrderStatusReturned,
		LocalOrderStatusUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of LocalOrderStatus
func (s LocalOrderStatus) String() string {
	return string(s)
}

// DisplayName returns the customer-facing label for the status
func (s LocalOrderStatus) DisplayName() string {
	switch s {
	case LocalOrderStatusNew:
		return "Yeni"
	case LocalOrderStatusPreparing:
		return "Hazırlanıyor"
	case LocalOrderStatusInvoiced:
		return "Faturalandı"
	case LocalOrderStatusInTransit:
		return "Kargoda"
	case LocalOrderStatusDelivered:
		return "Teslim Edildi"
	case LocalOrderStatusDeliveryProblem:
		return "Teslim Problemi"
	case LocalOrderStatusCancelled:
		return "İptal"
	case LocalOrderStatusReturned:
		return "İade Edildi"
	default:
		return "Bilinmiyor"
	}
}

// MapRemoteOrderStatus translates a marketplace order status into the local
// vocabulary. The mapping is total: any value not explicitly handled,
// including statuses the marketplace may introduce later, maps to Unknown
// rather than failing the sync.
func MapRemoteOrderStatus(remote RemoteOrderStatus) LocalOrderStatus {
	switch remote {
	case RemoteOrderStatusCreated:
		return LocalOrderStatusNew
	case RemoteOrderStatusPicking, RemoteOrderStatusRepack:
		return LocalOrderStatusPreparing
	case RemoteOrderStatusInvoiced:
		return LocalOrderStatusInvoiced
	case RemoteOrderStatusShipped, RemoteOrderStatusAtCollectionPoint:
		return LocalOrderStatusInTransit
	case RemoteOrderStatusDelivered:
		return LocalOrderStatusDelivered
	case RemoteOrderStatusUnDelivered:
		return LocalOrderStatusDeliveryProblem
	case RemoteOrderStatusCancelled, RemoteOrderStatusUnSupplied:
		return LocalOrderStatusCancelled
	case RemoteOrderStatusReturned:
		return LocalOrderStatusReturned
	default:
		return LocalOrderStatusUnknown
	}
}
