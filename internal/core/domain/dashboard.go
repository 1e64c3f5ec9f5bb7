package domain

// Row is a stored-procedure result row passed through to clients unchanged.
// Used for aggregates whose column set belongs to the procedure.
type Row map[string]any

// DashboardStats are the headline counters of the dashboard.
type DashboardStats struct {
	TotalBeneficiariasActivas      int64 `json:"totalBeneficiariasActivas"`
	TotalBeneficiariasInactivas    int64 `json:"totalBeneficiariasInactivas"`
	TotalProyectosCompletados      int64 `json:"totalProyectosCompletados"`
	TotalProyectosEnProceso        int64 `json:"totalProyectosEnProceso"`
	TotalCapacitacionesCompletadas int64 `json:"totalCapacitacionesCompletadas"`
	TotalCapacitacionesEnProceso   int64 `json:"totalCapacitacionesEnProceso"`
	TotalSectores                  int64 `json:"totalSectores"`
}
