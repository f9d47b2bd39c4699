package reputation

// ActionID identifies one qualifying business event category. IDs are the
// contract with the downstream scoring system that reads
// score_user_reputation_counts and must never be renumbered once shipped.
type ActionID int

// Worker actions (contractor side).
const (
	WorkerRegistered           ActionID = 1
	WorkerProfileFilled        ActionID = 2
	WorkerIconSet              ActionID = 3
	WorkerIdentitySubmitted    ActionID = 4
	WorkerProposalSubmitted    ActionID = 5
	WorkerTaskDelivered        ActionID = 6
	WorkerTaskDeliveryAccepted ActionID = 7
	WorkerTaskDeliveryRejected ActionID = 8
	WorkerProjectProposed      ActionID = 9
	WorkerProjectContracted    ActionID = 10
	WorkerProjectDelivered     ActionID = 11
	WorkerProjectApproved      ActionID = 12
	WorkerProjectEvaluated     ActionID = 13
	WorkerPaymentReceived      ActionID = 14
)

// Client actions (outsourcer side).
const (
	ClientRegistered           ActionID = 21
	ClientProfileFilled        ActionID = 22
	ClientIconSet              ActionID = 23
	ClientTaskJobPosted        ActionID = 24
	ClientProjectJobPosted     ActionID = 25
	ClientTaskDeliveryAccepted ActionID = 26
	ClientTaskDeliveryRejected ActionID = 27
	ClientProjectContracted    ActionID = 28
	ClientProjectApproved      ActionID = 29
	ClientPaymentMade          ActionID = 30
)

var actionNames = map[ActionID]string{
	WorkerRegistered:           "worker_registered",
	WorkerProfileFilled:        "worker_profile_filled",
	WorkerIconSet:              "worker_icon_set",
	WorkerIdentitySubmitted:    "worker_identity_submitted",
	WorkerProposalSubmitted:    "worker_proposal_submitted",
	WorkerTaskDelivered:        "worker_task_delivered",
	WorkerTaskDeliveryAccepted: "worker_task_delivery_accepted",
	WorkerTaskDeliveryRejected: "worker_task_delivery_rejected",
	WorkerProjectProposed:      "worker_project_proposed",
	WorkerProjectContracted:    "worker_project_contracted",
	WorkerProjectDelivered:     "worker_project_delivered",
	WorkerProjectApproved:      "worker_project_approved",
	WorkerProjectEvaluated:     "worker_project_evaluated",
	WorkerPaymentReceived:      "worker_payment_received",
	ClientRegistered:           "client_registered",
	ClientProfileFilled:        "client_profile_filled",
	ClientIconSet:              "client_icon_set",
	ClientTaskJobPosted:        "client_task_job_posted",
	ClientProjectJobPosted:     "client_project_job_posted",
	ClientTaskDeliveryAccepted: "client_task_delivery_accepted",
	ClientTaskDeliveryRejected: "client_task_delivery_rejected",
	ClientProjectContracted:    "client_project_contracted",
	ClientProjectApproved:      "client_project_approved",
	ClientPaymentMade:          "client_payment_made",
}

// String returns the stable snake_case name for an action, or "unknown".
func (a ActionID) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Known reports whether the ID belongs to either catalog.
func (a ActionID) Known() bool {
	_, ok := actionNames[a]
	return ok
}

// WorkerActions lists every worker action in catalog order.
func WorkerActions() []ActionID {
	return []ActionID{
		WorkerRegistered,
		WorkerProfileFilled,
		WorkerIconSet,
		WorkerIdentitySubmitted,
		WorkerProposalSubmitted,
		WorkerTaskDelivered,
		WorkerTaskDeliveryAccepted,
		WorkerTaskDeliveryRejected,
		WorkerProjectProposed,
		WorkerProjectContracted,
		WorkerProjectDelivered,
		WorkerProjectApproved,
		WorkerProjectEvaluated,
		WorkerPaymentReceived,
	}
}

// ClientActions lists every client action in catalog order.
func ClientActions() []ActionID {
	return []ActionID{
		ClientRegistered,
		ClientProfileFilled,
		ClientIconSet,
		ClientTaskJobPosted,
		ClientProjectJobPosted,
		ClientTaskDeliveryAccepted,
		ClientTaskDeliveryRejected,
		ClientProjectContracted,
		ClientProjectApproved,
		ClientPaymentMade,
	}
}
