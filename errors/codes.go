package errors

// Code is a machine-readable error code identifying the bootstrap stage
// that failed.
type Code string

const (
	// CodeSecretMissing indicates a required secret was absent from the store.
	CodeSecretMissing Code = "SECRET_MISSING"
	// CodeLogLevelInvalid indicates the configured log level could not be parsed.
	CodeLogLevelInvalid Code = "LOG_LEVEL_INVALID"
	// CodeTaskPanicked indicates a supervised task terminated with a panic.
	CodeTaskPanicked Code = "TASK_PANICKED"
	// CodeTaskFailed indicates a supervised task returned a normal error.
	CodeTaskFailed Code = "TASK_FAILED"
	// CodeResourceProvisionFailed indicates a host resource could not be acquired.
	CodeResourceProvisionFailed Code = "RESOURCE_PROVISION_FAILED"
	// CodeAlreadyInstalled indicates a second attempt to install the global
	// logging pipeline.
	CodeAlreadyInstalled Code = "ALREADY_INSTALLED"
)
