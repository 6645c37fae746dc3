package domain

import "fmt"

// ConfigError indica un valor de configuración ausente o inválido.
// Para la credencial se devuelve antes de cualquier llamada de red.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("config: missing %s in environment", e.Key)
	}
	return fmt.Sprintf("config: %s: %s", e.Key, e.Reason)
}

// RemoteError es una respuesta no-2xx de la API de Simmer.
type RemoteError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("simmer %s: %s", e.Status, e.Body)
}
