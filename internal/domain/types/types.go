package types

type ServiceMode string

// Process - runs the pipeline once and exits
// Serve - exposes the analytics admin API, metrics and pipeline websocket
// Token - prints an admin access token for operators
const (
	ProcessMode ServiceMode = "process"
	ServeMode   ServiceMode = "serve"
	TokenMode   ServiceMode = "token"
)

func (m ServiceMode) Valid() bool {
	switch m {
	case ProcessMode, ServeMode, TokenMode:
		return true
	}
	return false
}

// Artifact is the name of one aggregate table produced by the pipeline.
type Artifact string

func (a Artifact) String() string {
	return string(a)
}

const (
	HourlyMetrics     Artifact = "hourly_metrics"
	GeographicMetrics Artifact = "geographic_metrics"
	PeakHours         Artifact = "peak_hours"
	VehicleType       Artifact = "vehicle_type"
	SurgeAnalysis     Artifact = "surge_analysis"
)

// Artifacts returns every artifact in export order.
func Artifacts() []Artifact {
	return []Artifact{HourlyMetrics, GeographicMetrics, PeakHours, VehicleType, SurgeAnalysis}
}

func ParseArtifact(s string) (Artifact, bool) {
	for _, a := range Artifacts() {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// Enum для роли пользователя
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	AnalystRole UserRole = "ANALYST"
	AdminRole   UserRole = "ADMIN"
)
