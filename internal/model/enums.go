package model

type Role string

const (
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

type Urgency string

const (
	UrgencyLow    Urgency = "LOW"
	UrgencyMedium Urgency = "MEDIUM"
	UrgencyHigh   Urgency = "HIGH"
)

func (u Urgency) Valid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh:
		return true
	}
	return false
}

type LeadStatus string

const (
	LeadStatusInProgress LeadStatus = "IN_PROGRESS"
	LeadStatusDone       LeadStatus = "DONE"
	LeadStatusSuspended  LeadStatus = "SUSPENDED"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusInProgress, LeadStatusDone, LeadStatusSuspended:
		return true
	}
	return false
}

type PropertyStatus string

const (
	PropertyStatusNew        PropertyStatus = "NEW"
	PropertyStatusViewed     PropertyStatus = "VIEWED"
	PropertyStatusInterested PropertyStatus = "INTERESTED"
	PropertyStatusRejected   PropertyStatus = "REJECTED"
)

// ValidPropertyStatuses lists every value a client may set through the
// status-update endpoint.
var ValidPropertyStatuses = []PropertyStatus{
	PropertyStatusNew,
	PropertyStatusViewed,
	PropertyStatusInterested,
	PropertyStatusRejected,
}

func (s PropertyStatus) Valid() bool {
	for _, v := range ValidPropertyStatuses {
		if s == v {
			return true
		}
	}
	return false
}
