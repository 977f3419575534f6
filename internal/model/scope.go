package model

// Scope identifies who is acting on the system.
type Scope struct {
	OwnerID  int64
	Username string
}

// Environment names accepted by config.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
