package domain

// Agent es la identidad del agente que llama a la API. Snapshot de solo lectura.
type Agent struct {
	ID          string
	Name        string
	Status      string
	Balance     float64
	TradesCount int
}

// Briefing es el documento opaco de /api/sdk/briefing.
type Briefing map[string]any
