package response

import (
	"github.com/salonpoint/pos-api/internal/application/service"
	"github.com/salonpoint/pos-api/internal/domain/entity"
)

// WizardStateResponse is the full wizard state returned after every
// wizard operation: the session snapshot, tab enablement derived from it,
// and the navigation-lock flag for the shell.
type WizardStateResponse struct {
	Session    *entity.InvoiceSession `json:"session"`
	Tabs       []service.TabState     `json:"tabs"`
	InProgress bool                   `json:"in_progress"`
}

// NewWizardState builds a wizard state response from a session snapshot
func NewWizardState(wizard *service.WizardService, sess *entity.InvoiceSession) *WizardStateResponse {
	return &WizardStateResponse{
		Session:    sess,
		Tabs:       wizard.TabStates(sess),
		InProgress: sess.Service != nil,
	}
}
