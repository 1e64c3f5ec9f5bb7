package domain

// Capacitacion is a training. Same assignment model as Proyecto.
type Capacitacion struct {
	ID                 int64  `json:"id_capacitacion"`
	Nombre             string `json:"nombre"`
	Descripcion        string `json:"descripcion"`
	TipoCapacitacion   string `json:"tipo_capacitacion"`
	Alcance            string `json:"alcance"`
	PoblacionMeta      string `json:"poblacion_meta"`
	RecursosMateriales string `json:"recursos_materiales"`
	RecursosEconomicos string `json:"recursos_economicos"`
	FechaInicio        string `json:"fecha_inicio"`
	FechaFin           string `json:"fecha_fin"`
	Observaciones      string `json:"observaciones"`
	Estado             string `json:"estado"`
}
