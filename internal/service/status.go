package service

import (
	"strings"

	"github.com/MohanBabu05/Ticktet-Generation-Management-System/internal/domain"
	apperrors "github.com/MohanBabu05/Ticktet-Generation-Management-System/pkg/util"
)

// validateTransition enforces the lifecycle rules: the requested status must
// be part of the enumeration, Closed is reachable only from Completed, and
// Closed itself is terminal.
func validateTransition(current, requested domain.TicketStatus) error {
	if !domain.IsValidStatus(requested) {
		return apperrors.NewInvalidStatus(string(requested))
	}
	if current == domain.TicketStatusClosed {
		return apperrors.NewIllegalTransition("ticket is closed and cannot change status", map[string]any{
			"current_status": current,
		})
	}
	if requested == domain.TicketStatusClosed && current != domain.TicketStatusCompleted {
		return apperrors.NewIllegalTransition(
			"cannot close ticket: status must be 'Completed' first before closing",
			map[string]any{"current_status": current},
		)
	}
	return nil
}

// validateCompletion enforces the mandatory resolution fields for the
// Completed transition.
func validateCompletion(resolutionType, completionRemarks *string) error {
	if resolutionType == nil || strings.TrimSpace(*resolutionType) == "" {
		return apperrors.NewMissingResolution(
			"resolution type is mandatory when marking ticket as Completed", nil)
	}
	if !domain.IsValidResolutionType(*resolutionType) {
		return apperrors.NewMissingResolution(
			"invalid resolution type", map[string]any{
				"resolution_type": *resolutionType,
				"allowed":         domain.ResolutionTypes,
			})
	}
	if completionRemarks == nil || strings.TrimSpace(*completionRemarks) == "" {
		return apperrors.NewMissingResolution(
			"completion remarks are mandatory when marking ticket as Completed", nil)
	}
	return nil
}
