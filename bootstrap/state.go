package bootstrap

// State is a phase of the bootstrap sequence. Transitions are strictly
// linear; StateFailed is terminal and reachable from every non-terminal
// state.
type State string

const (
	StateStart                State = "start"
	StateSecretsResolved      State = "secrets_resolved"
	StateLoggingInstalled     State = "logging_installed"
	StateResourcesProvisioned State = "resources_provisioned"
	StateRouterBuilt          State = "router_built"
	StateServiceReady         State = "service_ready"
	StateFailed               State = "failed"
)
