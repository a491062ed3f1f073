package schema

// OutputMode controls how results are rendered.
type OutputMode string

// Output modes for results.
const (
	TextOut    OutputMode = "text"    // Human-readable table output
	CSVOut     OutputMode = "csv"     // Comma-separated values
	JSONOut    OutputMode = "json"    // Indented JSON
	ParquetOut OutputMode = "parquet" // Parquet file export
)

// CacheBackend identifies the database backend for the story cache.
type CacheBackend string

// Supported story cache backends.
const (
	SQLiteBackend     CacheBackend = "sqlite"
	MySQLBackend      CacheBackend = "mysql"
	PostgreSQLBackend CacheBackend = "postgresql"
	NoneBackend       CacheBackend = "none"
)

// StorySource identifies which origin a story record arrived from.
type StorySource string

// Story origins, in ascending order of local control.
const (
	LiveSource  StorySource = "live"  // Remote/authoritative fetch result
	DebugSource StorySource = "debug" // Bundled fixture stories
	LocalSource StorySource = "local" // Client-persisted cache
)

// ChartKind is the rendering type chosen for an extracted series.
type ChartKind string

// Chart kinds for driver signals.
const (
	LineChart ChartKind = "line"
	BarChart  ChartKind = "bar"
)

// ViewKind selects which combined timeline a view is built around.
type ViewKind string

// View kinds for chart preparation.
const (
	EvaluationView ViewKind = "evaluation" // Historical + held-out test predictions
	ProjectionView ViewKind = "projection" // Historical + forward forecast
)

// DatasetKind identifies the role of a raw dataset handed to the extractor.
type DatasetKind string

// Dataset roles consumed by the view pipeline.
const (
	HistoricalData DatasetKind = "historical"
	TestData       DatasetKind = "test"
	ForecastData   DatasetKind = "forecast"
	DriverData     DatasetKind = "driver"
)

// Canonical field names carried on combined rows.
const (
	FieldActual               = "actual"
	FieldActualTest           = "actual_test"
	FieldBaseline             = "baseline"
	FieldMultivariate         = "multivariate"
	FieldBaselineForecast     = "baseline_forecast"
	FieldMultivariateForecast = "multivariate_forecast"
	FieldHandoffBaseline      = "handoff_baseline"
	FieldHandoffMultivariate  = "handoff_multivariate"
)
