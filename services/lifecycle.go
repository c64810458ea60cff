package services

import "github.com/SamarthKasar123/Primewave/models"

// settableStatuses are the only targets a manager may hand to the status
// endpoint. Extension statuses are reached exclusively through the
// negotiation operations.
var settableStatuses = map[models.ProjectStatus]bool{
	models.StatusAccepted:  true,
	models.StatusRejected:  true,
	models.StatusCompleted: true,
}

// hasOpenExtensionRequest is the guard for the manager-side extension
// verdict operations: they act only while the client-visible status says a
// request is awaiting an answer.
func hasOpenExtensionRequest(p *models.Project) bool {
	return p.Status == models.StatusExtensionRequested
}
