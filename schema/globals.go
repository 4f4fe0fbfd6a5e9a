package schema

// Custom string types for type safety.
type (
	// Region represents one of Brazil's five macro-regions.
	Region string

	// Disease represents an arbovirus tracked by the analysis.
	Disease string

	// ClimateVariable represents a monthly climate measurement.
	ClimateVariable string

	// CorrelationStatus represents the computability outcome of a correlation.
	CorrelationStatus string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for result caching.
	DatabaseBackend string
)

// All macro-regions supported.
const (
	NorteRegion       Region = "norte"
	NordesteRegion    Region = "nordeste"
	CentroOesteRegion Region = "centro-oeste"
	SudesteRegion     Region = "sudeste"
	SulRegion         Region = "sul"
)

// All diseases supported.
const (
	Dengue      Disease = "dengue"
	Zika        Disease = "zika"
	Chikungunya Disease = "chikungunya"
)

// All climate variables supported.
const (
	Temperature   ClimateVariable = "temperature"
	Precipitation ClimateVariable = "precipitation"
	Humidity      ClimateVariable = "humidity"
)

// All correlation statuses supported.
const (
	StatusOK               CorrelationStatus = "ok"
	StatusInsufficientData CorrelationStatus = "insufficient_data"
	StatusDegenerate       CorrelationStatus = "degenerate"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllRegions returns a list of all macro-regions in display order.
var AllRegions = []Region{NorteRegion, NordesteRegion, CentroOesteRegion, SudesteRegion, SulRegion}

// ValidRegions lists all valid macro-regions.
var ValidRegions = map[Region]struct{}{
	NorteRegion:       {},
	NordesteRegion:    {},
	CentroOesteRegion: {},
	SudesteRegion:     {},
	SulRegion:         {},
}

// ValidDiseases lists all valid diseases.
var ValidDiseases = map[Disease]struct{}{
	Dengue:      {},
	Zika:        {},
	Chikungunya: {},
}

// ValidClimateVariables lists all valid climate variables.
var ValidClimateVariables = map[ClimateVariable]struct{}{
	Temperature:   {},
	Precipitation: {},
	Humidity:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
