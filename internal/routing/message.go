package routing

import (
	"fmt"

	"github.com/romain-38530/rdv-planning/internal/domain"
)

// Message renders the one-line system message announcing who receives the
// appointment request and in what capacity. It opens every new thread.
func Message(res Result) string {
	switch res.TargetOrganizationType {
	case domain.RecipientLogistician:
		return fmt.Sprintf("Demande de RDV envoyee a %s (logisticien delegue)", res.TargetOrganizationName)
	case domain.RecipientSupplier:
		return fmt.Sprintf("Demande de RDV envoyee a %s (fournisseur)", res.TargetOrganizationName)
	default:
		return fmt.Sprintf("Demande de RDV envoyee a %s (donneur d'ordre)", res.TargetOrganizationName)
	}
}
