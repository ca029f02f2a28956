package ports

// Capability identifiers bound in the service registry during startup.
const (
	// CapabilityDatabase is the connected external stateful dependency.
	CapabilityDatabase = "Database"

	// CapabilityDatabaseProbe is the [StatusProbe] for the database.
	CapabilityDatabaseProbe = "DatabaseProbe"

	// CapabilityUpstreamProbePrefix prefixes the [StatusProbe] of each
	// configured upstream HTTP dependency, e.g. "UpstreamProbe:pricing-api".
	CapabilityUpstreamProbePrefix = "UpstreamProbe:"

	// CapabilityHealthService is the [HealthService].
	CapabilityHealthService = "HealthService"
)
