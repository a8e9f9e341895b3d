// plume/controllers/health.go
package controllers

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

// Status reports liveness. Handlers hold no state and the database is only
// touched per request, so there is nothing deeper to probe.
func (h *HealthController) Status() map[string]string {
	return map[string]string{"status": "ok"}
}
