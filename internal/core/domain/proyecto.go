package domain

// Proyecto is a social project. Beneficiaries and sectors are linked through
// assignments, not embedded.
type Proyecto struct {
	ID                    int64  `json:"id_proyecto"`
	Nombre                string `json:"nombre"`
	Descripcion           string `json:"descripcion"`
	TipoProyecto          string `json:"tipo_proyecto"`
	FechaInicio           string `json:"fecha_inicio"`
	FechaFin              string `json:"fecha_fin"`
	PlanteamientoProblema string `json:"planteamiento_problema"`
	ObjetivosGenerales    string `json:"objetivos_generales"`
	ObjetivosEspecificos  string `json:"objetivos_especificos"`
	Alcance               string `json:"alcance"`
	PoblacionMeta         string `json:"poblacion_meta"`
	RecursosMateriales    string `json:"recursos_materiales"`
	RecursosEconomicos    string `json:"recursos_economicos"`
	Observaciones         string `json:"observaciones"`
	Estado                string `json:"estado"`
}
